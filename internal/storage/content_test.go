package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ContentStore {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/books/dune.txt", []byte("A beginning is a very delicate time."), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/data/books/notes.md", []byte("skip me"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/data/covers/dune.png", []byte("\x89PNG\r\n\x1a\nrest"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/data/secret.txt", []byte("outside"), 0o644))
	return NewContentStore(fsys, "/data/books", "/data/covers")
}

func TestReadBook(t *testing.T) {
	s := newTestStore(t)

	data, err := s.ReadBook("dune.txt")
	require.NoError(t, err)
	assert.Equal(t, "A beginning is a very delicate time.", string(data))

	_, err = s.ReadBook("missing.txt")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestReadBook_RejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"../secret.txt", "a/../../secret.txt", "", "/"} {
		_, err := s.ReadBook(name)
		assert.ErrorIs(t, err, ErrNotExist, name)
	}
}

func TestBookExistsAndList(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.BookExists("dune.txt"))
	assert.False(t, s.BookExists("nope.txt"))

	names, err := s.ListBooks()
	require.NoError(t, err)
	assert.Equal(t, []string{"dune.txt"}, names)
}

func TestReadCover(t *testing.T) {
	s := newTestStore(t)

	data, contentType, err := s.ReadCover("dune.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.NotEmpty(t, data)

	_, _, err = s.ReadCover("dune.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}
