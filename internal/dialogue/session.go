package dialogue

import (
	"errors"
	"fmt"
)

// State — состояние диалоговой сессии.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

var (
	ErrNotStarted     = errors.New("dialogue session has not been started")
	ErrAlreadyStarted = errors.New("dialogue session has already been started")
	ErrFinished       = errors.New("dialogue session is already finished")
)

// FieldError — ошибка нормализации/заполнения конкретного поля. Состояние
// сессии при этом не меняется: пользователь остается на том же шаге.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("please provide a valid %s", e.Field)
}

// Session — линейный конечный автомат направляемого ввода: упорядоченный
// список шагов, текущий индекс и накапливаемый черновик. Нормализация ответа
// (SubmitResponse) и переход к следующему шагу (Advance) намеренно разделены:
// пользователь может поправить распознанный текст до подтверждения.
//
// Сессия рассчитана на одного пользователя и не защищена от конкурентного
// доступа.
type Session struct {
	steps []Step
	state State
	index int
	draft Draft
}

// NewSession создает сессию над стандартной таблицей шагов.
func NewSession() *Session {
	return NewSessionWithSteps(Steps())
}

// NewSessionWithSteps создает сессию над произвольной таблицей шагов.
func NewSessionWithSteps(steps []Step) *Session {
	return &Session{
		steps: steps,
		state: StateNotStarted,
		draft: NewDraft(),
	}
}

// State возвращает текущее состояние автомата.
func (s *Session) State() State { return s.state }

// Draft возвращает копию текущего черновика.
func (s *Session) Draft() Draft { return s.draft }

// Progress возвращает номер текущего шага (с единицы) и общее число шагов.
func (s *Session) Progress() (current, total int) {
	return s.index + 1, len(s.steps)
}

// Current возвращает шаг, на котором находится сессия.
func (s *Session) Current() (*Step, error) {
	if s.state != StateInProgress {
		return nil, ErrNotStarted
	}
	return &s.steps[s.index], nil
}

// Start переводит сессию из NotStarted на первый шаг.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.state = StateInProgress
	s.index = 0
	return nil
}

// SubmitResponse прогоняет ответ через нормализатор текущего шага и,
// если результат валиден, записывает его в черновик. Сессия остается на том
// же шаге: переход выполняется отдельным вызовом Advance.
func (s *Session) SubmitResponse(transcript string) error {
	if s.state != StateInProgress {
		return ErrNotStarted
	}

	step := s.steps[s.index]
	value := step.Normalize(transcript)

	if !step.Optional && isEmptyValue(value) {
		return &FieldError{Field: step.Field}
	}

	step.Apply(&s.draft, value)
	return nil
}

// Advance переходит к следующему шагу. Требует, чтобы поле текущего шага было
// заполнено (кроме необязательных шагов). На последнем шаге сессия переходит
// в Completed, и готовый черновик доступен через Draft().
func (s *Session) Advance() error {
	if s.state != StateInProgress {
		return ErrNotStarted
	}

	step := s.steps[s.index]
	if !step.Optional && !step.IsSet(s.draft) {
		return &FieldError{Field: step.Field}
	}

	if s.index < len(s.steps)-1 {
		s.index++
		return nil
	}

	s.state = StateCompleted
	return nil
}

// Retreat возвращается на предыдущий шаг. Уже введенные данные покидаемого
// поля не очищаются.
func (s *Session) Retreat() error {
	if s.state != StateInProgress {
		return ErrNotStarted
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Cancel прерывает сессию; черновик сбрасывается.
func (s *Session) Cancel() error {
	if s.state == StateCompleted || s.state == StateCancelled {
		return ErrFinished
	}
	s.state = StateCancelled
	s.draft = NewDraft()
	return nil
}

// isEmptyValue: пустая строка — нераспознанный ввод. Список (features)
// пустым результатом не считается по определению.
func isEmptyValue(value interface{}) bool {
	if str, ok := value.(string); ok {
		return str == ""
	}
	return false
}
