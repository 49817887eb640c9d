package generator_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	. "github.com/pseudomuto/cppgen/pkg/generator"
	"github.com/stretchr/testify/require"
)

func TestManifest(t *testing.T) {
	t.Run("new manifest is empty", func(t *testing.T) {
		m := NewManifest()
		require.Equal(t, 0, m.Len())
		require.Empty(t, m.TotalHash)

		var buf bytes.Buffer
		n, err := m.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		require.Equal(t, "\n", buf.String())
	})

	t.Run("WriteTo outputs total hash then files", func(t *testing.T) {
		m := NewManifest()
		m.Add("widget.h", []byte("class Widget;"))
		m.Add("widget.cpp", []byte("#include \"widget.h\""))
		require.Empty(t, m.TotalHash)

		var buf bytes.Buffer
		_, err := m.WriteTo(&buf)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		require.Equal(t, m.TotalHash, lines[0])
		require.True(t, strings.HasPrefix(lines[0], "h1:"))
		require.True(t, strings.HasPrefix(lines[1], "widget.h h1:"))
		require.True(t, strings.HasPrefix(lines[2], "widget.cpp h1:"))
	})

	t.Run("hashes are chained", func(t *testing.T) {
		a, b := []byte("int a;"), []byte("int b;")

		ordered := NewManifest()
		ordered.Add("a.h", a)
		ordered.Add("b.h", b)

		reversed := NewManifest()
		reversed.Add("b.h", b)
		reversed.Add("a.h", a)

		alone := NewManifest()
		alone.Add("b.h", b)

		var buf bytes.Buffer
		for _, m := range []*Manifest{ordered, reversed, alone} {
			_, err := m.WriteTo(&buf)
			require.NoError(t, err)
		}

		require.NotEqual(t, ordered.TotalHash, reversed.TotalHash)
		require.NotEqual(t, ordered.TotalHash, alone.TotalHash)
	})

	t.Run("deterministic", func(t *testing.T) {
		var out [2]bytes.Buffer
		for i := range out {
			m := NewManifest()
			m.Add("a.h", []byte("int a;"))
			m.Add("b.h", []byte("int b;"))
			_, err := m.WriteTo(&out[i])
			require.NoError(t, err)
		}

		require.Equal(t, out[0].String(), out[1].String())
	})
}

func TestLoadManifest(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewManifest()
		original.Add("widget.h", []byte("class Widget;"))
		original.Add("my file.cpp", []byte("int main() {}"))

		var buf bytes.Buffer
		_, err := original.WriteTo(&buf)
		require.NoError(t, err)
		written := buf.String()

		loaded, err := LoadManifest(&buf)
		require.NoError(t, err)
		require.Equal(t, original.TotalHash, loaded.TotalHash)
		require.Equal(t, []string{"widget.h", "my file.cpp"}, loaded.Names())

		var again bytes.Buffer
		_, err = loaded.WriteTo(&again)
		require.NoError(t, err)
		require.Equal(t, written, again.String())
	})

	t.Run("empty input", func(t *testing.T) {
		for _, input := range []string{"", "\n"} {
			m, err := LoadManifest(strings.NewReader(input))
			require.NoError(t, err)
			require.Equal(t, 0, m.Len())
			require.Empty(t, m.TotalHash)
		}
	})

	t.Run("ignores empty lines", func(t *testing.T) {
		input := "h1:dG90YWw=\n\na.h h1:dGVzdA==\n\nb.h h1:bW9yZQ==\n\n"

		m, err := LoadManifest(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 2, m.Len())
	})

	errorTests := []struct {
		name     string
		input    string
		contains string
	}{
		{"invalid total hash", "not-a-hash\n", "invalid total hash format"},
		{"entry without hash", "h1:dG90YWw=\nwidget.h\n", "invalid file entry format"},
		{"entry with bad prefix", "h1:dG90YWw=\nwidget.h md5:abc\n", "invalid hash format"},
		{"entry with bad base64", "h1:dG90YWw=\nwidget.h h1:!!!\n", "failed to decode hash"},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(strings.NewReader(tt.input))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestManifestVerify(t *testing.T) {
	fsys := fstest.MapFS{
		"widget.h":       &fstest.MapFile{Data: []byte("class Widget;")},
		"src/widget.cpp": &fstest.MapFile{Data: []byte("#include \"widget.h\"")},
	}

	m := NewManifest()
	m.Add("widget.h", fsys["widget.h"].Data)
	m.Add("src/widget.cpp", fsys["src/widget.cpp"].Data)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	require.NoError(t, m.Verify(fsys))

	t.Run("modified file", func(t *testing.T) {
		changed := fstest.MapFS{
			"widget.h":       fsys["widget.h"],
			"src/widget.cpp": &fstest.MapFile{Data: []byte("// edited")},
		}

		err := m.Verify(changed)
		require.ErrorIs(t, err, ErrManifestMismatch)
		require.Contains(t, err.Error(), "src/widget.cpp has been modified")
	})

	t.Run("missing file", func(t *testing.T) {
		err := m.Verify(fstest.MapFS{"widget.h": fsys["widget.h"]})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read src/widget.cpp")
	})

	t.Run("tampered total hash", func(t *testing.T) {
		tampered, err := LoadManifest(strings.NewReader("h1:dG90YWw=\n" + strings.SplitN(buf.String(), "\n", 2)[1]))
		require.NoError(t, err)
		require.ErrorIs(t, tampered.Verify(fsys), ErrManifestMismatch)
	})
}
