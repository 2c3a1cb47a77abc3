package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Базовый шаблон "local@domain.tld", как в исходной модели.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate проверяет объявление по всем обязательным полям сразу и возвращает
// полный список нарушений. Пустой список означает, что запись можно сохранять.
//
// Обязательные поля: propertyType (из списка PropertyTypes), адрес, город,
// штат и индекс, цена > 0, площадь > 0, имя/email/телефон агента. Страна
// обязательной не является (подставляется значение по умолчанию).
func (l *Listing) Validate() []string {
	var messages []string

	switch {
	case strings.TrimSpace(l.PropertyType) == "":
		messages = append(messages, "Property type is required")
	case !IsValidPropertyType(l.PropertyType):
		messages = append(messages, fmt.Sprintf("`%s` is not a valid enum value for propertyType", l.PropertyType))
	}

	if strings.TrimSpace(l.Location.Address) == "" {
		messages = append(messages, "Address is required")
	}
	if strings.TrimSpace(l.Location.City) == "" {
		messages = append(messages, "City is required")
	}
	if strings.TrimSpace(l.Location.State) == "" {
		messages = append(messages, "State is required")
	}
	if strings.TrimSpace(l.Location.ZipCode) == "" {
		messages = append(messages, "Zip code is required")
	}

	switch {
	case l.Price < 0:
		messages = append(messages, "Price cannot be negative")
	case l.Price == 0:
		messages = append(messages, "Price is required")
	}

	switch {
	case l.Area < 0:
		messages = append(messages, "Area cannot be negative")
	case l.Area == 0:
		messages = append(messages, "Area is required")
	}

	if l.Bedrooms < 0 {
		messages = append(messages, "Number of bedrooms cannot be negative")
	}
	if l.Bathrooms < 0 {
		messages = append(messages, "Number of bathrooms cannot be negative")
	}

	if strings.TrimSpace(l.Agent.Name) == "" {
		messages = append(messages, "Agent name is required")
	}

	switch {
	case strings.TrimSpace(l.Agent.Email) == "":
		messages = append(messages, "Agent email is required")
	case !emailPattern.MatchString(l.Agent.Email):
		messages = append(messages, "Please enter a valid email address")
	}

	if strings.TrimSpace(l.Agent.Phone) == "" {
		messages = append(messages, "Agent phone number is required")
	}

	if l.Status != "" && !IsValidStatus(l.Status) {
		messages = append(messages, fmt.Sprintf("`%s` is not a valid enum value for status", l.Status))
	}

	return messages
}

// ApplyDefaults подставляет значения по умолчанию для необязательных полей.
func (l *Listing) ApplyDefaults() {
	if l.Status == "" {
		l.Status = DefaultStatus
	}
	if strings.TrimSpace(l.Location.Country) == "" {
		l.Location.Country = DefaultCountry
	}
	if l.Features == nil {
		l.Features = []string{}
	}
	if l.Photos == nil {
		l.Photos = []string{}
	}
}
