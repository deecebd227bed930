package media

import "time"

type File struct {
	ID          string    `json:"id"`
	ObjectKey   string    `json:"objectKey"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Alt         string    `json:"alt"`
	InGallery   bool      `json:"inGallery"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MaxUploadSize caps a single upload.
const MaxUploadSize = 10 << 20

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".avif": "image/avif",
	".pdf":  "application/pdf",
}
