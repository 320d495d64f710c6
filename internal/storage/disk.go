package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrBlobNotFound is returned by Read when the locator does not resolve to
// an existing file.
var ErrBlobNotFound = errors.New("blob not found")

// Disk persists raw uploaded bytes under a single root directory. Files
// are stored by literal name, so two uploads sharing a filename overwrite
// the same location; collision avoidance is the caller's responsibility
// (that is what makes dedup-by-name work).
type Disk struct {
	root string
}

func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

func (d *Disk) Root() string { return d.root }

// Save writes the stream to <root>/<name> and returns the locator and the
// number of bytes written. The source is closed on every exit path. The
// root directory is created on first use.
func (d *Disk) Save(name string, src io.ReadCloser) (string, int64, error) {
	defer src.Close()

	if err := os.MkdirAll(d.root, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(d.root, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return path, size, nil
}

func (d *Disk) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (d *Disk) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes the blob if present. A missing file is not an error; the
// record may already reference a blob removed out-of-band.
func (d *Disk) Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
