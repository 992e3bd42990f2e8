package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/justsurfingit/job-search-tracker/internal/storage"
)

const MaxUploadSize = 10 << 20

var (
	ErrNoFile       = ValidationError("No file provided")
	ErrDocumentType = ValidationError("Invalid file type")
	ErrFileFormat   = ValidationError("Invalid file format. Only PDF, DOC, and DOCX are allowed.")
	ErrFileTooLarge = ValidationError("File size must be less than 10MB")
	ErrNoPath       = ValidationError("No file path provided")
)

var (
	unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

	allowedMIMETypes = map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}
	extensionMIMETypes = map[string]string{
		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
)

// DocumentKind is the slot an uploaded file fills on an application.
type DocumentKind string

const (
	DocumentCV          DocumentKind = "cv"
	DocumentCoverLetter DocumentKind = "coverLetter"
)

type UploadInput struct {
	File          io.Reader
	FileName      string
	ContentType   string
	Size          int64
	Kind          DocumentKind
	ApplicationID string
}

type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Path     string `json:"path"`
}

type UploadService struct {
	Store storage.ObjectStore
	Clock Clock
}

// NewUploadService accepts a nil store; uploads then report ErrUnavailable.
func NewUploadService(store storage.ObjectStore) *UploadService {
	return &UploadService{Store: store}
}

func (s *UploadService) Configured() bool {
	return s.Store != nil
}

// Upload validates the file (presence, slot, format, size, in that order)
// and stores it under a timestamped path.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if !s.Configured() {
		return nil, ErrUnavailable
	}
	if in.File == nil {
		return nil, ErrNoFile
	}
	if in.Kind != DocumentCV && in.Kind != DocumentCoverLetter {
		return nil, ErrDocumentType
	}
	contentType := DetectContentType(in.ContentType, in.FileName)
	if !allowedMIMETypes[contentType] {
		return nil, ErrFileFormat
	}
	if in.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	path := ObjectPath(in.ApplicationID, in.Kind, s.Clock.Now().UnixMilli(), in.FileName)
	if err := s.Store.Put(ctx, path, in.File, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &UploadResult{
		URL:      s.Store.PublicURL(path),
		FileName: in.FileName,
		Path:     path,
	}, nil
}

func (s *UploadService) Delete(ctx context.Context, path string) error {
	if !s.Configured() {
		return ErrUnavailable
	}
	if path == "" {
		return ErrNoPath
	}
	if err := s.Store.Remove(ctx, path); err != nil {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// DetectContentType trusts the declared type unless it is missing or generic,
// in which case the file extension decides.
func DetectContentType(declared, fileName string) string {
	declared = strings.TrimSpace(strings.SplitN(declared, ";", 2)[0])
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return extensionMIMETypes[strings.ToLower(filepath.Ext(fileName))]
}

func SanitizeFileName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// ObjectPath builds applications/<id>/<kind>/<millis>-<name>, or
// temp/<kind>/... when the file is not yet tied to an application.
func ObjectPath(applicationID string, kind DocumentKind, millis int64, fileName string) string {
	folder := "temp"
	if applicationID != "" {
		folder = "applications/" + applicationID
	}
	return fmt.Sprintf("%s/%s/%d-%s", folder, kind, millis, SanitizeFileName(fileName))
}
