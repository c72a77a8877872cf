// Package storage reads book text files and cover images from disk.
package storage

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotExist is returned when the requested file is absent or outside the store.
var ErrNotExist = errors.New("file does not exist")

// ContentStore serves read-only files from a books directory and a covers directory.
type ContentStore struct {
	books  afero.Fs
	covers afero.Fs
}

// NewContentStore jails each directory so relative names cannot escape it.
func NewContentStore(fsys afero.Fs, booksDir, coversDir string) *ContentStore {
	return &ContentStore{
		books:  afero.NewBasePathFs(fsys, booksDir),
		covers: afero.NewBasePathFs(fsys, coversDir),
	}
}

// NewOSContentStore is NewContentStore over the real filesystem.
func NewOSContentStore(booksDir, coversDir string) *ContentStore {
	return NewContentStore(afero.NewOsFs(), booksDir, coversDir)
}

// ReadBook returns the text content stored under fileName.
func (s *ContentStore) ReadBook(fileName string) ([]byte, error) {
	return readFile(s.books, fileName)
}

// BookExists reports whether a content file is present.
func (s *ContentStore) BookExists(fileName string) bool {
	name, ok := clean(fileName)
	if !ok {
		return false
	}
	info, err := s.books.Stat(name)
	return err == nil && !info.IsDir()
}

// ListBooks returns the names of all .txt files at the top of the books directory.
func (s *ContentStore) ListBooks() ([]string, error) {
	entries, err := afero.ReadDir(s.books, "/")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ReadCover returns the cover bytes and their content type.
func (s *ContentStore) ReadCover(fileName string) ([]byte, string, error) {
	data, err := readFile(s.covers, fileName)
	if err != nil {
		return nil, "", err
	}
	contentType := mime.TypeByExtension(path.Ext(fileName))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func readFile(fsys afero.Fs, fileName string) ([]byte, error) {
	name, ok := clean(fileName)
	if !ok {
		return nil, ErrNotExist
	}
	info, err := fsys.Stat(name)
	if err != nil || info.IsDir() {
		return nil, ErrNotExist
	}
	data, err := afero.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}

// clean rejects empty names and any name that climbs out of the root.
func clean(fileName string) (string, bool) {
	if fileName == "" || strings.ContainsRune(fileName, 0) {
		return "", false
	}
	cleaned := path.Clean("/" + filepath.ToSlash(fileName))
	if cleaned == "/" {
		return "", false
	}
	for _, part := range strings.Split(fileName, "/") {
		if part == ".." {
			return "", false
		}
	}
	return cleaned, true
}
