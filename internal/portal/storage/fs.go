package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FSUploader stores objects under a local directory. Used for development and
// tests; keys map directly onto file paths under the root.
type FSUploader struct {
	root string
	base string // URL prefix the files are served under
}

func NewFSUploader(root, baseURL string) (*FSUploader, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSUploader{root: root, base: strings.TrimSuffix(baseURL, "/")}, nil
}

func (u *FSUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	path, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// O_EXCL gives the same no-overwrite guarantee as the S3 backend.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrObjectExists
		}
		return err
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (u *FSUploader) URL(key string) string {
	return u.base + "/" + url.PathEscape(key)
}

func (u *FSUploader) Delete(ctx context.Context, key string) error {
	path, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path resolves key under the root and rejects traversal outside it.
func (u *FSUploader) path(key string) (string, error) {
	path := filepath.Join(u.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(u.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return path, nil
}
