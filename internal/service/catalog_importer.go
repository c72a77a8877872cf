package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"readscape/internal/cache"
	"readscape/internal/db"
	"readscape/internal/model"
	"readscape/internal/repository"
	"readscape/internal/storage"
)

// ManifestEntry describes one book in a seed manifest.
type ManifestEntry struct {
	Title      string  `json:"title"`
	Author     *string `json:"author"`
	Category   *string `json:"category"`
	FileName   string  `json:"file_name"`
	CoverImage *string `json:"cover_image"`
}

// ImportResult counts what an import did.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// CatalogImporter loads books into the catalog.
type CatalogImporter struct {
	books   repository.BookRepository
	content *storage.ContentStore
	cache   *cache.Client
	logf    func(format string, args ...interface{})
}

// NewCatalogImporter creates an importer. logf receives one line per skipped entry and may be nil.
func NewCatalogImporter(books repository.BookRepository, content *storage.ContentStore, cache *cache.Client, logf func(string, ...interface{})) *CatalogImporter {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &CatalogImporter{books: books, content: content, cache: cache, logf: logf}
}

// ImportManifest upserts each entry keyed by file name.
func (i *CatalogImporter) ImportManifest(ctx context.Context, entries []ManifestEntry) (ImportResult, error) {
	var res ImportResult
	categories := map[string]struct{}{}

	for _, entry := range entries {
		if entry.FileName == "" || strings.TrimSpace(entry.Title) == "" {
			i.logf("skipping entry without title or file_name: %+v", entry)
			res.Skipped++
			continue
		}
		if !i.content.BookExists(entry.FileName) {
			i.logf("skipping %s: content file not found", entry.FileName)
			res.Skipped++
			continue
		}

		existing, err := i.books.FindByFileName(ctx, entry.FileName)
		if err != nil && !db.IsNotFound(err) {
			return res, fmt.Errorf("find book %s: %w", entry.FileName, err)
		}

		if existing != nil {
			if existing.Category != nil {
				categories[*existing.Category] = struct{}{}
			}
			existing.Title = entry.Title
			existing.Author = entry.Author
			existing.Category = entry.Category
			existing.CoverImage = entry.CoverImage
			if err := i.books.Update(ctx, existing); err != nil {
				return res, fmt.Errorf("update book %s: %w", entry.FileName, err)
			}
			res.Updated++
		} else {
			book := &model.Book{
				Title:      entry.Title,
				Author:     entry.Author,
				Category:   entry.Category,
				FileName:   entry.FileName,
				CoverImage: entry.CoverImage,
			}
			if err := i.books.Create(ctx, book); err != nil {
				return res, fmt.Errorf("create book %s: %w", entry.FileName, err)
			}
			res.Created++
		}
		if entry.Category != nil {
			categories[*entry.Category] = struct{}{}
		}
	}

	i.invalidate(ctx, categories)
	return res, nil
}

// ScanStorage creates a book for every content file not yet in the catalog.
func (i *CatalogImporter) ScanStorage(ctx context.Context) (ImportResult, error) {
	var res ImportResult

	names, err := i.content.ListBooks()
	if err != nil {
		return res, fmt.Errorf("list content files: %w", err)
	}

	for _, name := range names {
		_, err := i.books.FindByFileName(ctx, name)
		if err == nil {
			res.Skipped++
			continue
		}
		if !db.IsNotFound(err) {
			return res, fmt.Errorf("find book %s: %w", name, err)
		}

		book := &model.Book{Title: TitleFromFileName(name), FileName: name}
		if err := i.books.Create(ctx, book); err != nil {
			return res, fmt.Errorf("create book %s: %w", name, err)
		}
		res.Created++
	}

	i.invalidate(ctx, nil)
	return res, nil
}

func (i *CatalogImporter) invalidate(ctx context.Context, categories map[string]struct{}) {
	keys := []string{catalogCacheKey(nil)}
	for c := range categories {
		c := c
		keys = append(keys, catalogCacheKey(&c))
	}
	_ = i.cache.Delete(ctx, keys...)
}

// TitleFromFileName turns "animal_farm.txt" into "Animal Farm".
func TitleFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for n, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[n] = string(r)
	}
	return strings.Join(words, " ")
}
