package generator

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
)

const hashPrefix = "h1:"

// ErrManifestMismatch is returned by Verify when a generated file no longer
// matches the manifest.
var ErrManifestMismatch = errors.New("manifest mismatch")

type (
	// Manifest records the hash of every file written by a generation run and
	// a total hash computed as SHA256 of all file hashes. File hashes are
	// chained: each file's hash incorporates the previous file's hash, so
	// reordering or dropping files changes every hash after the change.
	Manifest struct {
		files     []manifestEntry
		TotalHash string
	}

	manifestEntry struct {
		Name string
		Hash []byte
	}
)

// NewManifest creates an empty Manifest.
//
// Example:
//
//	m := generator.NewManifest()
//	m.Add("widget.h", header)
//	m.Add("widget.cpp", source)
//	m.WriteTo(os.Stdout)
func NewManifest() *Manifest {
	return &Manifest{files: make([]manifestEntry, 0)}
}

// LoadManifest reads a Manifest in the format produced by WriteTo:
//   - First line: total hash (h1:base64-encoded-hash)
//   - Following lines: <filename> <h1:base64-encoded-hash>
//
// Filenames may contain spaces; the hash is the last field on the line.
func LoadManifest(r io.Reader) (*Manifest, error) {
	scanner := bufio.NewScanner(r)
	m := NewManifest()

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to read total hash line")
		}
		return m, nil
	}

	totalHashLine := strings.TrimSpace(scanner.Text())
	if totalHashLine == "" {
		return m, nil
	}

	if !strings.HasPrefix(totalHashLine, hashPrefix) {
		return nil, errors.Errorf("invalid total hash format: %s", totalHashLine)
	}
	m.TotalHash = totalHashLine

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		idx := strings.LastIndexByte(line, ' ')
		if idx <= 0 {
			return nil, errors.Errorf("invalid file entry format: %s", line)
		}

		name, hash := line[:idx], line[idx+1:]
		if !strings.HasPrefix(hash, hashPrefix) {
			return nil, errors.Errorf("invalid hash format for file %s: %s", name, hash)
		}

		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(hash, hashPrefix))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode hash for file %s", name)
		}

		m.files = append(m.files, manifestEntry{Name: name, Hash: raw})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading manifest")
	}

	return m, nil
}

// Add records a file. The first file's hash is SHA256(content); every later
// hash is SHA256(content + previous hash). The total hash is computed by
// WriteTo.
func (m *Manifest) Add(name string, content []byte) {
	m.files = append(m.files, manifestEntry{Name: name, Hash: m.next(content)})
}

// Len returns the number of recorded files.
func (m *Manifest) Len() int {
	return len(m.files)
}

// Names returns the recorded file names in order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.files))
	for i, f := range m.files {
		names[i] = f.Name
	}
	return names
}

// WriteTo writes the manifest. It implements io.WriterTo.
//
// Example output:
//
//	h1:dG90YWxoYXNoZXhhbXBsZQ==
//	widget.h h1:dGVzdGRhdGE=
//	widget.cpp h1:bW9yZXRlc3Q=
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var total int64

	m.TotalHash = m.totalHash()

	n, err := fmt.Fprintf(w, "%s\n", m.TotalHash)
	if err != nil {
		return total, err
	}
	total += int64(n)

	for _, f := range m.files {
		n, err := fmt.Fprintf(w, "%s %s%s\n", f.Name, hashPrefix, base64.StdEncoding.EncodeToString(f.Hash))
		if err != nil {
			return total, err
		}
		total += int64(n)
	}

	return total, nil
}

// Verify rehashes every recorded file from fsys and reports the first one
// whose content differs as ErrManifestMismatch.
func (m *Manifest) Verify(fsys fs.FS) error {
	actual := NewManifest()

	for _, f := range m.files {
		content, err := fs.ReadFile(fsys, f.Name)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", f.Name)
		}

		actual.Add(f.Name, content)
		if !bytes.Equal(actual.files[len(actual.files)-1].Hash, f.Hash) {
			return errors.Wrapf(ErrManifestMismatch, "%s has been modified", f.Name)
		}
	}

	if m.TotalHash != "" && actual.totalHash() != m.TotalHash {
		return errors.Wrap(ErrManifestMismatch, "total hash differs")
	}

	return nil
}

func (m *Manifest) next(content []byte) []byte {
	hasher := sha256.New()
	hasher.Write(content)

	if len(m.files) > 0 {
		hasher.Write(m.files[len(m.files)-1].Hash)
	}

	return hasher.Sum(nil)
}

func (m *Manifest) totalHash() string {
	if len(m.files) == 0 {
		return ""
	}

	hasher := sha256.New()
	for _, f := range m.files {
		hasher.Write(f.Hash)
	}

	return hashPrefix + base64.StdEncoding.EncodeToString(hasher.Sum(nil))
}
