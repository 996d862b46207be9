package rom

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/sr8e/crclut/crc"
)

// ErrFileOpen marks failures to create or open an image file.
var ErrFileOpen = errors.New("cannot open rom file")

const filePerm os.FileMode = 0o644

// WriteFile replaces name with the image of t. The image is written to a
// temporary file in the same directory and renamed into place, so name is
// either left untouched or holds all Lines entries.
func WriteFile(fs afero.Fs, name string, t *crc.Table) (err error) {
	image := Image(t)

	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	f, err := afero.TempFile(fs, dir, "."+base+".*")
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "creating %s", name), ErrFileOpen)
	}
	tmp := f.Name()
	defer func() {
		if f != nil {
			_ = f.Close()
		}
		if err != nil {
			_ = fs.Remove(tmp)
		}
	}()

	if _, err := f.Write(image); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err := f.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", tmp)
	}
	closeErr := f.Close()
	f = nil
	if closeErr != nil {
		return errors.Wrapf(closeErr, "closing %s", tmp)
	}
	if err := fs.Chmod(tmp, filePerm); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp)
	}
	if err := fs.Rename(tmp, name); err != nil {
		return errors.Mark(errors.Wrapf(err, "replacing %s", name), ErrFileOpen)
	}
	return nil
}

// ReadFile decodes the image stored in name.
func ReadFile(fs afero.Fs, name string) (*crc.Table, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening %s", name), ErrFileOpen)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return t, nil
}
