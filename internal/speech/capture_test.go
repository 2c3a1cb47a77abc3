package speech

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource проигрывает заранее заданные события по требованию теста.
type scriptedSource struct {
	mu      sync.Mutex
	events  chan Transcript
	stopped bool
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{events: make(chan Transcript, 16)}
}

func (s *scriptedSource) Start(ctx context.Context) (<-chan Transcript, error) {
	return s.events, nil
}

func (s *scriptedSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.events)
	}
	return nil
}

func (s *scriptedSource) emit(text string, final bool) {
	s.events <- Transcript{Text: text, IsFinal: final}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition was not met in time")
}

func TestCapture_InterimEventsOnlyStage(t *testing.T) {
	src := newScriptedSource()

	var mu sync.Mutex
	var finals []string
	c := NewCapture(src, func(text string) {
		mu.Lock()
		finals = append(finals, text)
		mu.Unlock()
	})
	require.NoError(t, c.Start(context.Background()))

	src.emit("35", false)
	src.emit("35 la", false)
	waitFor(t, func() bool { return c.Staged() == "35 la" })

	mu.Lock()
	assert.Empty(t, finals)
	mu.Unlock()

	src.emit("35 lakh", true)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(finals) == 1
	})
	assert.Equal(t, "35 lakh", c.Staged())

	require.NoError(t, c.Stop())
}

func TestCapture_SetAndCommitStaged(t *testing.T) {
	src := newScriptedSource()
	c := NewCapture(src, nil)
	require.NoError(t, c.Start(context.Background()))

	src.emit("Maharastra", true)
	waitFor(t, func() bool { return c.Staged() != "" })

	// пользователь правит распознанный текст перед подтверждением
	c.SetStaged("Maharashtra")

	text, ok := c.CommitStaged()
	require.True(t, ok)
	assert.Equal(t, "Maharashtra", text)

	// буфер очищен, повторное подтверждение невозможно
	_, ok = c.CommitStaged()
	assert.False(t, ok)

	require.NoError(t, c.Stop())
}

func TestCapture_NoCallbacksAfterStop(t *testing.T) {
	src := newScriptedSource()

	var mu sync.Mutex
	var finals []string
	c := NewCapture(src, func(text string) {
		mu.Lock()
		finals = append(finals, text)
		mu.Unlock()
	})
	require.NoError(t, c.Start(context.Background()))

	src.emit("first", true)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(finals) == 1
	})

	require.NoError(t, c.Stop())
	assert.False(t, c.Listening())

	mu.Lock()
	got := len(finals)
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, got, len(finals))
	mu.Unlock()
}

func TestCapture_StopIsIdempotent(t *testing.T) {
	src := newScriptedSource()
	c := NewCapture(src, nil)
	require.NoError(t, c.Start(context.Background()))

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
}

func TestLineSource_EmitsFinalPerLine(t *testing.T) {
	src := NewLineSource(strings.NewReader("first line\nsecond line\n"))

	events, err := src.Start(context.Background())
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, Transcript{Text: "first line", IsFinal: true}, ev)
	ev = <-events
	assert.Equal(t, Transcript{Text: "second line", IsFinal: true}, ev)

	// конец потока закрывает канал
	_, open := <-events
	assert.False(t, open)

	require.NoError(t, src.Stop())
}

func TestLineSource_StopClosesChannel(t *testing.T) {
	src := NewLineSource(blockedReader{block: make(chan struct{})})

	events, err := src.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, src.Stop())

	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed after Stop")
	}
}

// blockedReader — Reader, который никогда не отдает данные.
type blockedReader struct{ block chan struct{} }

func (r blockedReader) Read(p []byte) (int, error) {
	<-r.block
	return 0, nil
}
