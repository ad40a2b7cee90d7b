package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPhotoSize caps entry photo uploads at 10 MiB.
const MaxPhotoSize = 10 << 20

var ErrUnsupportedType = errors.New("unsupported file type")

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store writes uploaded files under a base directory and maps them to public
// URLs served from /uploads/.
type Store struct {
	baseDir       string
	publicBaseURL string
}

func NewStore(baseDir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// SavePhoto persists an uploaded photo under a random name, keeping the
// original extension. Returns the public URL of the stored file.
func (s *Store) SavePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !photoExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, MaxPhotoSize)); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.publicBaseURL + "/uploads/" + name, nil
}

// Dir returns the base directory for static file serving.
func (s *Store) Dir() string { return s.baseDir }
