package speech

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// LineSource — источник распознавания поверх текстового потока: каждая
// строка считается финальной расшифровкой. Используется консольным агентом
// (stdin) и тестами.
type LineSource struct {
	r io.Reader

	mu      sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	events  chan Transcript
}

func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: r}
}

func (s *LineSource) Start(ctx context.Context) (<-chan Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, errors.New("line source is already stopped")
	}
	if s.started {
		return s.events, nil
	}
	s.started = true
	s.stop = make(chan struct{})
	s.events = make(chan Transcript)

	// Чтение строк вынесено в отдельную горутину: блокирующий Read
	// нельзя прервать, поэтому доставкой управляет форвардер ниже.
	raw := make(chan string)
	go func() {
		defer close(raw)
		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			select {
			case raw <- scanner.Text():
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(s.events)
		for {
			select {
			case line, ok := <-raw:
				if !ok {
					return
				}
				select {
				case s.events <- Transcript{Text: line, IsFinal: true}:
				case <-s.stop:
					return
				case <-ctx.Done():
					return
				}
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return s.events, nil
}

// Stop прекращает доставку. Идемпотентен; читающая горутина может жить
// до конца потока, но событий после Stop уже не отправит.
func (s *LineSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	if s.started {
		close(s.stop)
	}
	return nil
}
