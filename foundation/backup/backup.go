// Package backup copies a project's source folders and files into a
// timestamped snapshot directory.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config describes what gets copied and where the snapshot lands.
type Config struct {
	Root  string   // Folder the relative Dirs and Files are resolved against.
	Dest  string   // Folder the snapshot directory is created in, relative to Root.
	Dirs  []string // Folders copied recursively.
	Files []string // Individual files copied.
}

// Report describes the outcome of a backup.
type Report struct {
	Dir     string
	Copied  []string
	Skipped []string
}

// Name returns the snapshot folder name for the specified time. The
// timestamp is the UTC ISO-8601 form with ':' and '.' replaced by '-'.
func Name(now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return "backup-" + ts
}

// Run creates the snapshot. Missing folders and files are skipped and
// reported, anything else that fails aborts the backup.
func Run(cfg Config, now time.Time) (Report, error) {
	dir := filepath.Join(cfg.Root, cfg.Dest, Name(now))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Report{}, fmt.Errorf("create backup dir: %w", err)
	}

	report := Report{Dir: dir}

	for _, d := range cfg.Dirs {
		src := filepath.Join(cfg.Root, d)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.Skipped = append(report.Skipped, d)
				continue
			}
			return report, err
		}

		if err := CopyFolder(src, filepath.Join(dir, d)); err != nil {
			return report, fmt.Errorf("copy folder %s: %w", d, err)
		}
		report.Copied = append(report.Copied, d)
	}

	for _, f := range cfg.Files {
		src := filepath.Join(cfg.Root, f)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.Skipped = append(report.Skipped, f)
				continue
			}
			return report, err
		}

		if err := copyFile(src, filepath.Join(dir, f)); err != nil {
			return report, fmt.Errorf("copy file %s: %w", f, err)
		}
		report.Copied = append(report.Copied, f)
	}

	return report, nil
}

// CopyFolder recursively copies the source folder into the destination,
// creating the destination when it doesn't exist.
func CopyFolder(source string, destination string) error {
	if err := os.MkdirAll(destination, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		src := filepath.Join(source, entry.Name())
		dst := filepath.Join(destination, entry.Name())

		if entry.IsDir() {
			if err := CopyFolder(src, dst); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(src, dst); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a single file, keeping its permission bits.
func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
