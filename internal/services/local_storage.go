package services

import (
	"context"
	"encoding/json"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const localBaseURL = "/uploads"

// LocalStorage keeps blobs on disk under a single directory and serves them
// through the /uploads static route.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) UploadFile(_ context.Context, content []byte, filename, _ string) (string, error) {
	return s.write(uniqueBlobName(filename, time.Now()), content)
}

func (s *LocalStorage) UploadFileExact(_ context.Context, content []byte, exactName, _ string) (string, error) {
	return s.write(exactName, content)
}

func (s *LocalStorage) write(name string, content []byte) (string, error) {
	target := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", err
	}
	return s.FileURL(name), nil
}

func (s *LocalStorage) DeleteFile(_ context.Context, fileURLOrPath string) bool {
	name := s.extractName(fileURLOrPath)
	if name == "" {
		return false
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(name))); err != nil {
		return false
	}
	return true
}

func (s *LocalStorage) FileURL(filenameOrPath string) string {
	if strings.HasPrefix(filenameOrPath, "/") {
		return filenameOrPath
	}
	return localBaseURL + "/" + filenameOrPath
}

func (s *LocalStorage) SaveJSON(_ context.Context, blobPath string, data any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return s.write(blobPath, payload)
}

func (s *LocalStorage) GetJSON(_ context.Context, blobPath string) (map[string]any, bool) {
	raw, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(blobPath)))
	if err != nil {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (s *LocalStorage) ListFiles(_ context.Context, prefix string) ([]string, error) {
	base := s.root
	if prefix != "" {
		base = filepath.Join(s.root, filepath.FromSlash(prefix))
	}
	if _, err := os.Stat(base); err != nil {
		return []string{}, nil
	}

	paths := make([]string, 0)
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// SignedURL has nothing to sign locally; the plain URL is already readable.
func (s *LocalStorage) SignedURL(_ context.Context, fileURLOrPath string, _ time.Duration) (string, error) {
	return s.FileURL(s.extractName(fileURLOrPath)), nil
}

func (s *LocalStorage) Download(_ context.Context, fileURLOrPath string) ([]byte, string, error) {
	name := s.extractName(fileURLOrPath)
	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, "", err
	}
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return content, contentType, nil
}

// extractName accepts a bare blob name, an /uploads path, or a fully
// qualified URL and reduces it to the on-disk name.
func (s *LocalStorage) extractName(fileURLOrPath string) string {
	p := fileURLOrPath
	if parsed, err := url.Parse(p); err == nil && parsed.Host != "" {
		p = parsed.Path
	}
	if idx := strings.Index(p, "?"); idx >= 0 {
		p = p[:idx]
	}
	p = strings.TrimPrefix(p, localBaseURL)
	return strings.TrimPrefix(p, "/")
}
