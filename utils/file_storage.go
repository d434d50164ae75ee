package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileStorage interface {
	UploadFileFromReader(src io.Reader, fileName string) (string, error)
	ReadFile(fileName string) ([]byte, error)
	DeleteFile(fileName string) error
	FileExists(fileName string) (bool, error)
}

// LocalFileStorage keeps uploads under a single directory on the local
// filesystem. Stored names carry a generated id prefix, so collisions
// between concurrent uploads of the same client filename cannot happen.
type LocalFileStorage struct {
	uploadPath string
}

func NewLocalFileStorage(uploadPath string) *LocalFileStorage {
	return &LocalFileStorage{uploadPath: uploadPath}
}

// filePath confines the name to the upload directory. File names travel
// through client-supplied request fields, so anything that could resolve
// outside the directory is rejected outright.
func (s *LocalFileStorage) filePath(fileName string) (string, error) {
	if fileName == "" || fileName == "." || fileName == ".." ||
		strings.ContainsAny(fileName, `/\`) {
		return "", fmt.Errorf("invalid file name: %q", fileName)
	}
	return filepath.Join(s.uploadPath, fileName), nil
}

func (s *LocalFileStorage) UploadFileFromReader(src io.Reader, fileName string) (string, error) {
	filePath, err := s.filePath(fileName)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(s.uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
			return "", fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Clean up on error
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return filePath, nil
}

func (s *LocalFileStorage) ReadFile(fileName string) ([]byte, error) {
	filePath, err := s.filePath(fileName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filePath)
}

func (s *LocalFileStorage) DeleteFile(fileName string) error {
	filePath, err := s.filePath(fileName)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}

func (s *LocalFileStorage) FileExists(fileName string) (bool, error) {
	filePath, err := s.filePath(fileName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
