package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FingerprintPath hashes the content at path into a deterministic
// "sha256:<hex>" string. A file hashes to its content; a directory
// hashes to an ordered walk of relative path, size, and content per
// file, so renames and edits both change the fingerprint. Paths
// matching an ignore pattern are excluded from the walk.
func FingerprintPath(path string, ignore []string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	if !info.IsDir() {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from catalog discovery
		if err != nil {
			return "", err
		}
		h.Write(data)
		return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored(rel, ignore) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	var sizeBuf [8]byte
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(path, filepath.FromSlash(rel))) // #nosec G304
		if err != nil {
			return "", err
		}
		h.Write([]byte(rel))
		h.Write([]byte{0})
		binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(data)))
		h.Write(sizeBuf[:])
		h.Write(data)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

func ignored(rel string, patterns []string) bool {
	for _, pat := range patterns {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			// Invalid patterns are treated as non-matching; config
			// validation is the place to reject them.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// ListFiles returns the slash-separated relative paths that participate
// in a directory asset's fingerprint, in fingerprint order. For a plain
// file it returns the file's base name. The diff engine uses this to
// render per-logical-file diffs with the same visibility rules as the
// fingerprint itself.
func ListFiles(path string, ignore []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(path)}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored(rel, ignore) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
