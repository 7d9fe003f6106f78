package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	d, err := Load("", 0)
	require.NoError(t, err)
	require.Equal(t, 5, d.Length)
	require.Greater(t, d.Len(), 100)
	require.True(t, d.Contains("crane"))
	require.True(t, d.Contains("CRANE"))
	for _, w := range d.Words {
		require.Len(t, w, 5)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# comment\nTABLE\n\nchair\nsofa\nchair\nbed\nst0ol\nbench\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	d, err := Load(path, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"table", "chair", "bench"}, d.Words)

	d, err = Load(path, 4)
	require.NoError(t, err)
	require.Equal(t, []string{"sofa"}, d.Words)

	_, err = Load(path, 7)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), 0)
	require.Error(t, err)
}

func TestRandomAndAt(t *testing.T) {
	d, err := FromList([]string{"alpha", "bravo", "delta"}, 5)
	require.NoError(t, err)
	w, err := d.Random()
	require.NoError(t, err)
	require.True(t, d.Contains(w))
	require.Equal(t, "bravo", d.At(1))
	require.Equal(t, "alpha", d.At(3))
	require.Equal(t, "delta", d.At(-1))
}

func TestRandomSourceFailure(t *testing.T) {
	d, err := FromList([]string{"alpha", "bravo"}, 5)
	require.NoError(t, err)

	boom := errors.New("entropy unavailable")
	orig := randSource
	randSource = iotest.ErrReader(boom)
	t.Cleanup(func() { randSource = orig })

	_, err = d.Random()
	require.ErrorIs(t, err, boom)
}
