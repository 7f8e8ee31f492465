// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// file.go — save file and .gmd file I/O. Writes copy the previous file to a
// backup first and replace the primary through a synced temp file and a
// rename, so a failed save never truncates the original.

package gdsave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AndrewDonelson/gdsave/internal/plist"
)

// DefaultBackupSuffix is appended to the save file path to name its backup.
const DefaultBackupSuffix = ".bak"

// LocalLevelsPath returns the game's local levels file under %LOCALAPPDATA%.
func LocalLevelsPath() (string, error) {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		return "", fmt.Errorf("%w: LOCALAPPDATA is not set", ErrIO)
	}
	p := filepath.Join(base, "GeometryDash", "CCLocalLevels.dat")
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return p, nil
}

// ReadSaveFile reads and decodes the save file at path.
func ReadSaveFile(path string) (*SaveDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return DecodeSaveDocument(raw)
}

// WriteSaveFile encodes doc and writes it to path. When path exists and
// backupSuffix is not empty, its current content is first saved to
// path+backupSuffix.
func WriteSaveFile(path string, doc *SaveDocument, backupSuffix string) error {
	raw, err := doc.Encode()
	if err != nil {
		return err
	}
	if backupSuffix != "" {
		if err := backupFile(path, path+backupSuffix); err != nil {
			return err
		}
	}
	return writeFileAtomic(path, raw)
}

// backupFile copies src to dst. A missing src is not an error.
func backupFile(src, dst string) error {
	prev, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read for backup: %w", ErrIO, err)
	}
	return writeFileAtomic(dst, prev)
}

// writeFileAtomic replaces path with data via a synced temp file in the same
// directory.
func writeFileAtomic(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// .gmd
// ────────────────────────────────────────────────────────────────────────────

// ReadGMD reads a single exported level.
func ReadGMD(r io.Reader) (*Level, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	doc, err := plist.Parse(string(b))
	if err != nil {
		return nil, classify("parse gmd", err)
	}
	return levelFromDict(doc.Root)
}

// WriteGMD writes l as a single-level plist.
func (l *Level) WriteGMD(w io.Writer) error {
	d, err := l.toDict()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, plist.Write(&plist.Document{Root: d})); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ReadGMDFile reads the exported level at path.
func ReadGMDFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return ReadGMD(f)
}

// WriteGMDFile exports l to path.
func (l *Level) WriteGMDFile(path string) error {
	d, err := l.toDict()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(plist.Write(&plist.Document{Root: d})))
}
