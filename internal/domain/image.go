package domain

// Image описывает изображение галереи продукта.
// Связана с продуктами через many-to-many, собственного владельца не имеет.
type Image struct {
	ID      int64
	FileKey string // ключ объекта в S3
}

// FileObject описывает загружаемый в S3 файл.
type FileObject struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Передайте значение -1 в Size, если размер потока неизвестен.
	Size        *int64
	ContentType *string // Example: "image/jpeg"
}

func NewFileObject(id string, bucket string, objectKey string, data []byte, size *int64, contentType *string) *FileObject {
	return &FileObject{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}
