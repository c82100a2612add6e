// Package corpus reads the local document directory and computes the
// content fingerprint that drives index freshness decisions.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyCorpus indicates the corpus directory contains no readable documents.
var ErrEmptyCorpus = errors.New("no documents found in corpus")

// Document is a single file loaded from the corpus directory.
type Document struct {
	// Path is relative to the corpus root, with forward slashes.
	Path    string
	Content string
}

// Load reads every regular file under dir, in lexicographic path order.
// Hidden files and directories (dot-prefixed) are skipped.
// Returns ErrEmptyCorpus when nothing is found.
func Load(dir string) ([]Document, error) {
	var docs []Document
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
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, Document{
			Path:    filepath.ToSlash(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus %s: %w", dir, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, dir)
	}
	return docs, nil
}
