package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

var (
	ErrNoFiles             = errors.New("at least one file is required")
	ErrUnsupportedFileType = errors.New("invalid file type. Supported: PDF, PNG, JPG")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
)

// ExtractionRequest represents the incoming multipart upload
type ExtractionRequest struct {
	Files    []*multipart.FileHeader `form:"files[]" binding:"required"`
	Password string                  `form:"password"`
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate(maxFileSize int64) error {
	if len(r.Files) == 0 {
		return ErrNoFiles
	}
	for _, f := range r.Files {
		if DetectFileKind(f.Filename) == FileKindUnknown {
			return ErrUnsupportedFileType
		}
		if maxFileSize > 0 && f.Size > maxFileSize {
			return ErrFileTooLarge
		}
	}
	return nil
}

type FileKind string

const (
	FileKindPDF     FileKind = "pdf"
	FileKindImage   FileKind = "image"
	FileKindUnknown FileKind = ""
)

// DetectFileKind infers the kind of document from its file extension
func DetectFileKind(filename string) FileKind {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FileKindPDF
	case strings.HasSuffix(lower, ".png"),
		strings.HasSuffix(lower, ".jpg"),
		strings.HasSuffix(lower, ".jpeg"):
		return FileKindImage
	}
	return FileKindUnknown
}

// DocumentInput is one uploaded document after it has been read into memory
type DocumentInput struct {
	Filename string
	Data     []byte
	Password string
}
