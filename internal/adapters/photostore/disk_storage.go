// Package photostore хранит файлы фотографий на локальном диске.
// Имя файла строится из времени загрузки и исходного имени, публичный путь
// имеет вид "/uploads/<unix-millis>-<имя>"; по нему файлы раздаются как
// статика.
package photostore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxPhotoSize — предел размера одного файла (5 МБ).
const MaxPhotoSize = 5 * 1024 * 1024

// DiskStorage реализует PhotoStoragePort поверх каталога на диске.
type DiskStorage struct {
	dir        string
	publicPath string
}

func NewDiskStorage(dir, publicPath string) (*DiskStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &DiskStorage{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
	}, nil
}

// Dir возвращает каталог хранилища (для раздачи статики).
func (s *DiskStorage) Dir() string { return s.dir }

// PublicPath возвращает публичный префикс хранилища.
func (s *DiskStorage) PublicPath() string { return s.publicPath }

func (s *DiskStorage) Save(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed, got %q", contentType)
	}
	if size > MaxPhotoSize {
		return "", fmt.Errorf("file %q exceeds the %d byte limit", originalName, MaxPhotoSize)
	}

	base := sanitizeFilename(originalName)
	millis := time.Now().UnixMilli()

	// Префикс-метка времени разводит одноимённые файлы; при загрузке
	// нескольких файлов в одну миллисекунду добавляется порядковый номер.
	var (
		filename string
		fullPath string
		f        *os.File
		err      error
	)
	for attempt := 0; ; attempt++ {
		if attempt == 0 {
			filename = fmt.Sprintf("%d-%s", millis, base)
		} else {
			filename = fmt.Sprintf("%d-%d-%s", millis, attempt, base)
		}
		fullPath = filepath.Join(s.dir, filename)
		f, err = os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			break
		}
		if !os.IsExist(err) || attempt >= 100 {
			return "", fmt.Errorf("failed to create photo file %q: %w", fullPath, err)
		}
	}

	// Защита от файлов, у которых заявленный размер меньше фактического.
	written, err := io.Copy(f, io.LimitReader(r, MaxPhotoSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxPhotoSize {
		err = fmt.Errorf("file %q exceeds the %d byte limit", originalName, MaxPhotoSize)
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}

	return s.publicPath + "/" + filename, nil
}

func (s *DiskStorage) Remove(ctx context.Context, publicPath string) error {
	filename := filepath.Base(publicPath)
	if filename == "." || filename == "/" || filename == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		// Уже отсутствующий файл ошибкой не считается.
		return fmt.Errorf("failed to remove photo file %q: %w", filename, err)
	}
	return nil
}

// sanitizeFilename отбрасывает путь и пробелы из исходного имени файла.
func sanitizeFilename(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	return base
}
