package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")
)

// DocumentStore keeps customer KYC documents (ID proofs, agreements) on local
// disk, one directory per customer.
type DocumentStore struct {
	baseDir     string
	maxFileSize int64 // bytes
}

func NewDocumentStore(baseDir string, maxFileSizeMB int64) (*DocumentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DocumentStore{
		baseDir:     baseDir,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}, nil
}

// Save streams a document to disk under the customer's directory. It rejects
// names with path separators and enforces the configured size limit.
func (s *DocumentStore) Save(customerID, fileName string, r io.Reader) (int64, error) {
	path, err := s.resolve(customerID, fileName)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create customer directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	// +1 so a stream at exactly the limit still succeeds.
	n, err := io.Copy(f, io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write document: %w", err)
	}
	if n > s.maxFileSize {
		os.Remove(path)
		return 0, ErrFileTooLarge
	}
	return n, nil
}

// Open returns a reader for a stored document.
func (s *DocumentStore) Open(customerID, fileName string) (io.ReadCloser, error) {
	path, err := s.resolve(customerID, fileName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}

// List names the documents stored for a customer.
func (s *DocumentStore) List(customerID string) ([]string, error) {
	if !validName(customerID) {
		return nil, ErrInvalidFileName
	}
	entries, err := os.ReadDir(filepath.Join(s.baseDir, customerID))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Delete removes a stored document.
func (s *DocumentStore) Delete(customerID, fileName string) error {
	path, err := s.resolve(customerID, fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *DocumentStore) resolve(customerID, fileName string) (string, error) {
	if !validName(customerID) || !validName(fileName) {
		return "", ErrInvalidFileName
	}
	return filepath.Join(s.baseDir, customerID, fileName), nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
