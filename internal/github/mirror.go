package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Mirror downloads markdown files from one repository directory into the
// local corpus directory. It is a convenience populator: the corpus
// stays a plain directory, and the next process start re-indexes it
// through the usual fingerprint check.
type Mirror struct {
	client   *Client
	owner    string
	repo     string
	basePath string
	logger   *slog.Logger
}

// NewMirror creates a mirror for owner/repo, rooted at basePath within
// the repository.
func NewMirror(client *Client, owner, repo, basePath string, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: basePath,
		logger:   logger,
	}
}

// Sync downloads every markdown file under the repository path into
// destDir, preserving the relative layout. Returns the number of files
// written.
func (m *Mirror) Sync(ctx context.Context, destDir string) (int, error) {
	paths, err := m.list(ctx, m.basePath, "")
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no markdown files under %s/%s/%s", m.owner, m.repo, m.basePath)
	}

	written := 0
	for _, rel := range paths {
		content, err := m.fetch(ctx, rel)
		if err != nil {
			return written, err
		}
		target := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		m.logger.Info("mirrored document", "path", rel, "bytes", len(content))
		written++
	}
	return written, nil
}

// list recursively collects relative paths of markdown files.
func (m *Mirror) list(ctx context.Context, fullPath, relPath string) ([]string, error) {
	_, entries, _, err := m.client.Repositories.GetContents(ctx, m.owner, m.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fullPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.Type == nil || entry.Name == nil {
			continue
		}
		entryRel := path.Join(relPath, *entry.Name)
		switch *entry.Type {
		case "file":
			if strings.HasSuffix(*entry.Name, ".md") {
				paths = append(paths, entryRel)
			}
		case "dir":
			sub, err := m.list(ctx, path.Join(fullPath, *entry.Name), entryRel)
			if err != nil {
				return nil, err
			}
			paths = append(paths, sub...)
		}
	}
	return paths, nil
}

// fetch downloads and decodes one file.
func (m *Mirror) fetch(ctx context.Context, relPath string) ([]byte, error) {
	fullPath := path.Join(m.basePath, relPath)
	file, _, _, err := m.client.Repositories.GetContents(ctx, m.owner, m.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fullPath, err)
	}
	if file == nil || file.Content == nil {
		return nil, fmt.Errorf("no content returned for %s", fullPath)
	}
	content, err := base64.StdEncoding.DecodeString(*file.Content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fullPath, err)
	}
	return content, nil
}
