package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage abstracts where uploaded images live; the shop only ever sees
// public URL paths
type Storage interface {
	Save(file io.Reader, originalName string) (string, error)
	Remove(urlPath string) error
}

const publicPrefix = "/uploads/"

type localStorage struct {
	dir string
	log *zap.Logger
}

// NewLocal stores files on local disk under dir and serves them from /uploads/
func NewLocal(dir string, log *zap.Logger) (Storage, error) {
	if dir == "" {
		dir = "uploads/"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &localStorage{
		dir: dir,
		log: log.With(zap.String("component", "storage")),
	}, nil
}

// Save writes the file under a fresh uuid name, keeping the original extension
func (s *localStorage) Save(file io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		s.log.Error("Failed to create upload file", zap.Error(err), zap.String("path", path))
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		s.log.Error("Failed to write upload file", zap.Error(err), zap.String("path", path))
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return publicPrefix + name, nil
}

// Remove deletes the file behind a public URL path; a missing file is not
// an error
func (s *localStorage) Remove(urlPath string) error {
	if !strings.HasPrefix(urlPath, publicPrefix) {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(urlPath, publicPrefix))
	path := filepath.Join(s.dir, name)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove upload file", zap.Error(err), zap.String("path", path))
		return fmt.Errorf("remove upload file: %w", err)
	}

	return nil
}
