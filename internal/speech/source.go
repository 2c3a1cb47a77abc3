// Package speech отделяет шумный, непрерывно обновляющийся поток
// распознавания речи от авторитетного состояния диалога: промежуточные
// расшифровки только обновляют промежуточный буфер, в черновик попадает
// лишь финальный результат или явно подтвержденный пользователем текст.
package speech

import "context"

// Transcript — одно событие распознавания: текст и признак финальности.
// Нефинальные (промежуточные) события носят справочный характер и могут
// приходить сколько угодно раз, пока распознаватель не зафиксирует фразу.
type Transcript struct {
	Text    string
	IsFinal bool
}

// Source — отменяемый внешний источник событий распознавания речи
// (браузерный API, потоковый STT-движок, файл с расшифровкой в тестах).
type Source interface {
	// Start начинает доставку событий и возвращает канал, закрываемый
	// источником после Stop или отмены контекста. Повторный Start у уже
	// запущенного источника возвращает тот же канал.
	Start(ctx context.Context) (<-chan Transcript, error)

	// Stop прекращает доставку. Идемпотентен; после возврата Stop новые
	// события в канал не попадают, и канал закрывается.
	Stop() error
}
