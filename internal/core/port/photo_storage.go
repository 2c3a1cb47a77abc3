package port

import (
	"context"
	"io"
)

// PhotoStoragePort — контракт файлового хранилища фотографий.
type PhotoStoragePort interface {
	// Save сохраняет содержимое файла и возвращает его публичный путь
	// (например "/uploads/1756708800000-front.jpg").
	Save(ctx context.Context, originalName string, contentType string, size int64, r io.Reader) (string, error)

	// Remove удаляет файл по его публичному пути. Отсутствующий файл
	// ошибкой не считается.
	Remove(ctx context.Context, publicPath string) error
}
