package dialogue

// DraftLocation — адресная часть черновика. Все значения хранятся строками
// ровно в том виде, в каком их выдал нормализатор.
type DraftLocation struct {
	Address string
	City    string
	State   string
	ZipCode string
}

// DraftAgent — контакты агента в черновике.
type DraftAgent struct {
	Name  string
	Email string
	Phone string
}

// Draft — незавершенное объявление, которое диалоговый контроллер заполняет
// по одному полю за шаг. Черновик живет только на стороне клиента: на сервер
// он уходит единым запросом после прохождения всех шагов, частично
// заполненный черновик никогда не сохраняется.
type Draft struct {
	PropertyType string
	Location     DraftLocation
	Price        string
	Area         string
	Bedrooms     string
	Bathrooms    string
	Description  string
	Features     []string
	Agent        DraftAgent
	Status       string

	// PhotoConfirmation — ответ "Yes"/"No" на вопрос о добавлении фото.
	// Управляет только дальнейшим ходом сценария, в запись не попадает.
	PhotoConfirmation string
}

// NewDraft создает пустой черновик со статусом по умолчанию.
func NewDraft() Draft {
	return Draft{
		Features: []string{},
		Status:   "For Sale",
	}
}
