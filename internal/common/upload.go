package common

import "io"

// UploadedFile carries one multipart file from a handler to a service.
type UploadedFile struct {
	Filename string
	MimeType string
	Content  io.Reader
}
