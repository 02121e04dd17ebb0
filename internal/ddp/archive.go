package ddp

// archive.go provides read access to member files inside a DDP zip.
//
// Platforms nest their exports in arbitrary folder structures
// ("TikTok_Data/Activity/Comments.txt"), so members are addressed by base
// name. When several members share a base name, the first one in central
// directory order wins.

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxMemberSize caps how many bytes are read from a single member (64MB).
var MaxMemberSize int64 = 64 * 1024 * 1024

var (
	// ErrMemberNotFound is returned when no member has the requested base name.
	ErrMemberNotFound = errors.New("member not found in archive")

	// ErrMemberTooLarge is returned when a member exceeds MaxMemberSize.
	ErrMemberTooLarge = errors.New("member too large")
)

// Archive is an opened DDP zip file.
type Archive struct {
	reader *zip.ReadCloser
	index  map[string]*zip.File
	names  []string
}

// OpenArchive opens the zip at p and indexes its members by base name.
func OpenArchive(p string) (*Archive, error) {
	rc, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", p, err)
	}

	a := &Archive{
		reader: rc,
		index:  make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
		if _, seen := a.index[base]; seen {
			continue
		}
		a.index[base] = f
		a.names = append(a.names, base)
	}
	return a, nil
}

// Names returns the base names of all file members in archive order.
func (a *Archive) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// ReadMember returns the raw bytes of the member with the given base name.
func (a *Archive) ReadMember(name string) ([]byte, error) {
	f, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrMemberNotFound)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open member %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxMemberSize+1))
	if err != nil {
		return nil, fmt.Errorf("read member %s: %w", name, err)
	}
	if int64(len(data)) > MaxMemberSize {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", name, MaxMemberSize, ErrMemberTooLarge)
	}
	return data, nil
}

// ReadText reads a member and decodes it as UTF-8 text.
func (a *Archive) ReadText(name string) (string, error) {
	data, err := a.ReadMember(name)
	if err != nil {
		return "", err
	}
	text, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("decode member %s: %w", name, err)
	}
	return text, nil
}

// Close releases the underlying zip reader.
func (a *Archive) Close() error {
	return a.reader.Close()
}

// ExtractMember opens the archive at p and returns the named member's bytes.
// Callers extracting several members should use OpenArchive instead.
func ExtractMember(p, name string) (*bytes.Reader, error) {
	a, err := OpenArchive(p)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	data, err := a.ReadMember(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
