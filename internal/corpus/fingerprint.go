package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Fingerprint computes a SHA-256 digest over the bytes of every regular
// file under dir. Files are streamed into one incremental hash in
// lexicographic path order (filepath.WalkDir guarantees this), so the
// digest is reproducible across platforms regardless of raw directory
// listing order. File names are not hashed: renaming a file without
// changing its content or its sort position leaves the digest unchanged.
//
// Any unreadable file fails the whole computation; a partial digest is
// never returned.
func Fingerprint(dir string) (string, error) {
	hasher := sha256.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		if _, err := io.Copy(hasher, f); err != nil {
			return fmt.Errorf("hash %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", dir, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
