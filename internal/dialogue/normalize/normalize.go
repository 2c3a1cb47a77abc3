// Package normalize содержит чистые функции преобразования сырой расшифровки
// речи в нормализованное значение поля. Функции детерминированы и не имеют
// побочных эффектов; пустой результат означает "ввод не распознан" для всех
// полей, кроме списка через запятую и подтверждения Да/Нет.
package normalize

import (
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var propertyTypes = []string{"apartment", "house", "villa", "commercial", "land"}

var titleCaser = cases.Title(language.English)

// Максимальное расстояние Левенштейна, при котором неточно произнесенное
// название региона еще считается совпадением ("Maharastra" -> "Maharashtra").
const regionMaxDistance = 2

// PropertyType ищет тип недвижимости как подстроку без учета регистра;
// побеждает первое совпадение. Если ничего не найдено, сырой ввод
// возвращается без изменений — его отклонит серверная валидация.
func PropertyType(transcript string) string {
	lower := strings.ToLower(transcript)
	for _, t := range propertyTypes {
		if strings.Contains(lower, t) {
			return titleCaser.String(t)
		}
	}
	return strings.TrimSpace(transcript)
}

// Region нормализует произнесенное название региона: сначала точное
// совпадение, затем двустороннее вхождение подстроки ("I live in Maharashtra
// state" -> "Maharashtra"), затем поправка опечаток распознавания по
// расстоянию Левенштейна. Если ничего не подошло — ввод без изменений.
func Region(transcript string) string {
	input := strings.TrimSpace(transcript)
	if input == "" {
		return ""
	}
	lower := strings.ToLower(input)

	for _, state := range IndianStates {
		if strings.ToLower(state) == lower {
			return state
		}
	}

	for _, state := range IndianStates {
		stateLower := strings.ToLower(state)
		if strings.Contains(lower, stateLower) || strings.Contains(stateLower, lower) {
			return state
		}
	}

	// Частые огрехи распознавания речи: пропущенная или лишняя буква.
	if len(lower) >= 4 {
		for _, state := range IndianStates {
			if matchr.Levenshtein(lower, strings.ToLower(state)) <= regionMaxDistance {
				return state
			}
		}
	}

	return input
}

// Price извлекает первый числовой токен и разворачивает индийские денежные
// сокращения: "35 lakh" -> "3500000", "2.5 crore" -> "25000000". Пустая
// строка означает, что числа в расшифровке не было.
func Price(transcript string) string {
	input := strings.ToLower(strings.TrimSpace(transcript))

	token := firstNumericToken(input)
	if token == "" {
		return ""
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return ""
	}

	switch {
	case strings.Contains(input, "lakh") || strings.Contains(input, "lac"):
		value *= 100_000
	case strings.Contains(input, "crore") || strings.Contains(input, "cr"):
		value *= 10_000_000
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

// firstNumericToken возвращает первую последовательность вида `\d+(\.\d+)?`.
func firstNumericToken(s string) string {
	start := -1
	sawDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if start == -1 {
				start = i
			}
		case r == '.' && start != -1 && !sawDot && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9':
			sawDot = true
		default:
			if start != -1 {
				return s[start:i]
			}
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}

// Digits оставляет только цифры (индексы, телефоны, количество комнат).
// Идемпотентна: строка из одних цифр возвращается без изменений.
func Digits(transcript string) string {
	var b strings.Builder
	for _, r := range transcript {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decimal оставляет цифры и десятичную точку (площадь).
func Decimal(transcript string) string {
	var b strings.Builder
	for _, r := range transcript {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FreeText — обрезка пробелов для свободного текста.
func FreeText(transcript string) string {
	return strings.TrimSpace(transcript)
}

// Email — обрезка пробелов и приведение к нижнему регистру.
func Email(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

// CommaList разбивает ввод по запятым и обрезает каждый элемент.
// Пустой ввод дает пустой список, а не ошибку.
func CommaList(transcript string) []string {
	if strings.TrimSpace(transcript) == "" {
		return []string{}
	}
	parts := strings.Split(transcript, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}

// YesNo — подтверждение: любой ввод, содержащий "yes", означает "Yes",
// все остальное — "No". Результат есть всегда.
func YesNo(transcript string) string {
	if strings.Contains(strings.ToLower(transcript), "yes") {
		return "Yes"
	}
	return "No"
}
