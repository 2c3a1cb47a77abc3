package speech

import (
	"context"
	"sync"
)

// Capture слушает Source и ведет промежуточный буфер расшифровки.
// Каждое событие обновляет буфер; колбэк OnFinal вызывается только для
// финальных событий. Пользователь может в любой момент поправить буфер
// (SetStaged) и подтвердить его вручную (CommitStaged).
//
// Stop детерминирован: после возврата Stop ни одно событие не будет
// доставлено и ни один колбэк не будет вызван.
type Capture struct {
	source Source

	// OnFinal вызывается из горутины чтения для каждой финальной
	// расшифровки. Может быть nil.
	OnFinal func(text string)

	// OnError вызывается при ошибке запуска источника. Может быть nil.
	OnError func(err error)

	mu        sync.Mutex
	staged    string
	listening bool
	done      chan struct{}
}

// NewCapture создает захват поверх источника распознавания.
func NewCapture(source Source, onFinal func(text string)) *Capture {
	return &Capture{
		source:  source,
		OnFinal: onFinal,
	}
}

// Start запускает прослушивание. Повторный вызов у активного захвата — no-op.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return nil
	}

	events, err := c.source.Start(ctx)
	if err != nil {
		c.mu.Unlock()
		if c.OnError != nil {
			c.OnError(err)
		}
		return err
	}

	c.listening = true
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go func() {
		defer close(done)
		for ev := range events {
			c.mu.Lock()
			c.staged = ev.Text
			c.mu.Unlock()

			if ev.IsFinal && c.OnFinal != nil {
				c.OnFinal(ev.Text)
			}
		}
	}()

	return nil
}

// Stop останавливает источник и дожидается выхода горутины чтения, поэтому
// после возврата Stop колбэки гарантированно не вызываются. Идемпотентен.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if !c.listening {
		c.mu.Unlock()
		return nil
	}
	c.listening = false
	done := c.done
	c.mu.Unlock()

	err := c.source.Stop()
	<-done
	return err
}

// Listening сообщает, активен ли захват.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Staged возвращает текущее содержимое промежуточного буфера.
func (c *Capture) Staged() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staged
}

// SetStaged заменяет буфер отредактированным пользователем текстом.
func (c *Capture) SetStaged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = text
}

// CommitStaged подтверждает текущий буфер: возвращает его содержимое и
// очищает буфер. Пустой буфер подтвердить нельзя.
func (c *Capture) CommitStaged() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staged == "" {
		return "", false
	}
	text := c.staged
	c.staged = ""
	return text, true
}
