package port

import "io"

// PhotoUpload — один загружаемый файл фотографии, уже прошедший проверку
// транспортного уровня (MIME-тип image/*, размер не более 5 МБ).
type PhotoUpload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.Reader
}
