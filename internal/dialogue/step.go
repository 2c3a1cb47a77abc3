package dialogue

import (
	"property-listing-service/internal/dialogue/normalize"
)

// Step — одна единица "вопрос/поле" направляемого диалога. Каждый шаг несет
// свой нормализатор и функцию-патч черновика; динамическая диспетчеризация
// не нужна, шаги перебираются по индексу.
type Step struct {
	// Field — идентификатор поля формы ("price", "agent.email", ...).
	Field string

	// Question задается пользователю, Hint — необязательная подсказка.
	Question string
	Hint     string

	// Optional: шаг валиден даже с пустым результатом нормализации
	// (список удобств и подтверждение фото).
	Optional bool

	// Normalize превращает сырую расшифровку в значение поля.
	// Пустая строка означает нераспознанный ввод.
	Normalize func(transcript string) interface{}

	// Apply записывает нормализованное значение в черновик.
	Apply func(draft *Draft, value interface{})

	// IsSet сообщает, заполнено ли привязанное поле черновика, —
	// условие для перехода к следующему шагу.
	IsSet func(draft Draft) bool
}

// Steps возвращает таблицу из 15 шагов направляемого ввода объявления.
func Steps() []Step {
	return []Step{
		{
			Field:     "propertyType",
			Question:  "What type of property is this?",
			Hint:      "Say one of: Apartment, House, Villa, Commercial, or Land",
			Normalize: func(t string) interface{} { return normalize.PropertyType(t) },
			Apply:     func(d *Draft, v interface{}) { d.PropertyType = v.(string) },
			IsSet:     func(d Draft) bool { return d.PropertyType != "" },
		},
		{
			Field:     "address",
			Question:  "What is the street address of the property?",
			Hint:      "Include street number and name",
			Normalize: func(t string) interface{} { return normalize.FreeText(t) },
			Apply:     func(d *Draft, v interface{}) { d.Location.Address = v.(string) },
			IsSet:     func(d Draft) bool { return d.Location.Address != "" },
		},
		{
			Field:     "city",
			Question:  "In which city is the property located?",
			Normalize: func(t string) interface{} { return normalize.FreeText(t) },
			Apply:     func(d *Draft, v interface{}) { d.Location.City = v.(string) },
			IsSet:     func(d Draft) bool { return d.Location.City != "" },
		},
		{
			Field:     "state",
			Question:  "In which state is the property located?",
			Hint:      "Say one of the Indian states, e.g., Maharashtra, Karnataka, etc.",
			Normalize: func(t string) interface{} { return normalize.Region(t) },
			Apply:     func(d *Draft, v interface{}) { d.Location.State = v.(string) },
			IsSet:     func(d Draft) bool { return d.Location.State != "" },
		},
		{
			Field:     "zipCode",
			Question:  "What is the zip code of the property?",
			Hint:      "Numbers only",
			Normalize: func(t string) interface{} { return normalize.Digits(t) },
			Apply:     func(d *Draft, v interface{}) { d.Location.ZipCode = v.(string) },
			IsSet:     func(d Draft) bool { return d.Location.ZipCode != "" },
		},
		{
			Field:     "price",
			Question:  "What is the price of the property?",
			Hint:      "You can say numbers with Indian currency terms like '35 Lakh' or '2 Crore'",
			Normalize: func(t string) interface{} { return normalize.Price(t) },
			Apply:     func(d *Draft, v interface{}) { d.Price = v.(string) },
			IsSet:     func(d Draft) bool { return d.Price != "" },
		},
		{
			Field:     "area",
			Question:  "How many square feet is the property?",
			Hint:      "Numbers only",
			Normalize: func(t string) interface{} { return normalize.Decimal(t) },
			Apply:     func(d *Draft, v interface{}) { d.Area = v.(string) },
			IsSet:     func(d Draft) bool { return d.Area != "" },
		},
		{
			Field:     "bedrooms",
			Question:  "How many bedrooms does the property have?",
			Hint:      "Numbers only",
			Normalize: func(t string) interface{} { return normalize.Digits(t) },
			Apply:     func(d *Draft, v interface{}) { d.Bedrooms = v.(string) },
			IsSet:     func(d Draft) bool { return d.Bedrooms != "" },
		},
		{
			Field:     "bathrooms",
			Question:  "How many bathrooms does the property have?",
			Hint:      "Numbers only",
			Normalize: func(t string) interface{} { return normalize.Digits(t) },
			Apply:     func(d *Draft, v interface{}) { d.Bathrooms = v.(string) },
			IsSet:     func(d Draft) bool { return d.Bathrooms != "" },
		},
		{
			Field:     "description",
			Question:  "Please provide a brief description of the property.",
			Hint:      "Include key features and condition",
			Normalize: func(t string) interface{} { return normalize.FreeText(t) },
			Apply:     func(d *Draft, v interface{}) { d.Description = v.(string) },
			IsSet:     func(d Draft) bool { return d.Description != "" },
		},
		{
			Field:     "features",
			Question:  "What amenities does the property have?",
			Hint:      "List amenities separated by commas (e.g., pool, garage, garden)",
			Optional:  true,
			Normalize: func(t string) interface{} { return normalize.CommaList(t) },
			Apply:     func(d *Draft, v interface{}) { d.Features = v.([]string) },
			IsSet:     func(d Draft) bool { return len(d.Features) > 0 },
		},
		{
			Field:     "agent.name",
			Question:  "What is the agent's name?",
			Hint:      "Full name of the listing agent",
			Normalize: func(t string) interface{} { return normalize.FreeText(t) },
			Apply:     func(d *Draft, v interface{}) { d.Agent.Name = v.(string) },
			IsSet:     func(d Draft) bool { return d.Agent.Name != "" },
		},
		{
			Field:     "agent.email",
			Question:  "What is the agent's email address?",
			Hint:      "Format: name@example.com",
			Normalize: func(t string) interface{} { return normalize.Email(t) },
			Apply:     func(d *Draft, v interface{}) { d.Agent.Email = v.(string) },
			IsSet:     func(d Draft) bool { return d.Agent.Email != "" },
		},
		{
			Field:     "agent.phone",
			Question:  "What is the agent's phone number?",
			Hint:      "Numbers only",
			Normalize: func(t string) interface{} { return normalize.Digits(t) },
			Apply:     func(d *Draft, v interface{}) { d.Agent.Phone = v.(string) },
			IsSet:     func(d Draft) bool { return d.Agent.Phone != "" },
		},
		{
			Field:     "photoConfirmation",
			Question:  "Would you like to add photos to this listing?",
			Hint:      "Say 'Yes' if you want to add photos in the next step, or 'No' to skip",
			Optional:  true,
			Normalize: func(t string) interface{} { return normalize.YesNo(t) },
			Apply:     func(d *Draft, v interface{}) { d.PhotoConfirmation = v.(string) },
			IsSet:     func(d Draft) bool { return d.PhotoConfirmation != "" },
		},
	}
}
