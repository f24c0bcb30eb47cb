// Package backup copies a database file aside before it is edited.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Suffix is inserted between the database file stem and its extension.
const Suffix = "_backup"

// Path returns the backup location for dbPath: the same directory and
// extension, with Suffix appended to the stem. mlvt.db becomes mlvt_backup.db.
func Path(dbPath string) string {
	ext := filepath.Ext(dbPath)
	// A leading dot on the base name is not an extension (".env" has no ext).
	if base := filepath.Base(dbPath); ext == base {
		ext = ""
	}
	return strings.TrimSuffix(dbPath, ext) + Suffix + ext
}

// Guard performs the pre-edit backup on a filesystem.
type Guard struct {
	fs afero.Fs
}

// NewGuard returns a Guard over fs. A nil fs means the OS filesystem.
func NewGuard(fs afero.Fs) *Guard {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Guard{fs: fs}
}

// EnsureDatabase creates an empty file at dbPath if nothing exists there.
// It reports whether the file was created.
func (g *Guard) EnsureDatabase(dbPath string) (bool, error) {
	exists, err := afero.Exists(g.fs, dbPath)
	if err != nil {
		return false, fmt.Errorf("stat database: %w", err)
	}
	if exists {
		return false, nil
	}

	f, err := g.fs.OpenFile(dbPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, fmt.Errorf("create database: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("create database: %w", err)
	}
	return true, nil
}

// Backup copies dbPath byte for byte to Path(dbPath), replacing any earlier
// backup, and returns the backup path. The caller must not edit the database
// when Backup returns an error.
func (g *Guard) Backup(dbPath string) (string, error) {
	dst := Path(dbPath)
	if err := g.copyFile(dbPath, dst); err != nil {
		return "", fmt.Errorf("back up %s: %w", dbPath, err)
	}
	return dst, nil
}

func (g *Guard) copyFile(src, dst string) error {
	in, err := g.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := g.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
