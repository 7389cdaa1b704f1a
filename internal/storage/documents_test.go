package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStore_SaveAndOpen(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir(), 1)
	assert.NoError(t, err)

	n, err := store.Save("cust-1", "id-proof.pdf", strings.NewReader("document body"))
	assert.NoError(t, err)
	assert.Equal(t, int64(len("document body")), n)

	f, err := store.Open("cust-1", "id-proof.pdf")
	assert.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	assert.NoError(t, err)
	assert.Equal(t, "document body", string(body))
}

func TestDocumentStore_List(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir(), 1)
	assert.NoError(t, err)

	names, err := store.List("cust-1")
	assert.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.Save("cust-1", "a.pdf", strings.NewReader("a"))
	assert.NoError(t, err)
	_, err = store.Save("cust-1", "b.pdf", strings.NewReader("b"))
	assert.NoError(t, err)

	names, err = store.List("cust-1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, names)
}

func TestDocumentStore_RejectsPathEscapes(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir(), 1)
	assert.NoError(t, err)

	_, err = store.Save("cust-1", "../escape.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidFileName)

	_, err = store.Save("..", "file.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidFileName)

	_, err = store.Open("cust-1", "sub/dir.txt")
	assert.ErrorIs(t, err, ErrInvalidFileName)
}

func TestDocumentStore_SizeLimit(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir(), 1)
	assert.NoError(t, err)

	// 1 MB limit; a payload just past it must be rejected and cleaned up.
	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, err = store.Save("cust-1", "big.bin", big)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	names, err := store.List("cust-1")
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestDocumentStore_Delete(t *testing.T) {
	store, err := NewDocumentStore(t.TempDir(), 1)
	assert.NoError(t, err)

	_, err = store.Save("cust-1", "a.pdf", strings.NewReader("a"))
	assert.NoError(t, err)

	assert.NoError(t, store.Delete("cust-1", "a.pdf"))
	assert.ErrorIs(t, store.Delete("cust-1", "a.pdf"), ErrFileNotFound)
}
