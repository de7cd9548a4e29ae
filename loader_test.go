package droute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(filename, []byte("one.test\ntwo.test\n"), 0644))

	rules, err := NewFileLoader(filename).Load()
	require.NoError(t, err)
	require.Equal(t, []string{"one.test", "two.test"}, rules)
}

func TestFileLoaderMissing(t *testing.T) {
	_, err := NewFileLoader("does-not-exist.txt").Load()
	require.Error(t, err)
}

func TestStaticLoader(t *testing.T) {
	rules, err := NewStaticLoader([]string{"one.test"}).Load()
	require.NoError(t, err)
	require.Equal(t, []string{"one.test"}, rules)
}
