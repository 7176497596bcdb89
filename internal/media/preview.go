package media

import (
	"fmt"
	"os"
	"path/filepath"
)

// Preview is a locally owned, displayable handle for an accepted file.
// It must be released when the image it backs leaves scope, or the
// backing resource leaks for the lifetime of the session.
type Preview struct {
	URL string

	release func() error
}

func (p *Preview) Release() error {
	if p == nil || p.release == nil {
		return nil
	}
	err := p.release()
	p.release = nil
	return err
}

// PreviewGenerator turns an accepted file into a Preview without any
// network I/O.
type PreviewGenerator interface {
	Generate(id string, f File) (*Preview, error)
}

// DiskPreviews writes previews under a session-scoped directory and
// serves them by URL path. Release removes the file.
type DiskPreviews struct {
	Dir     string
	BaseURL string
}

func NewDiskPreviews(dir, baseURL string) (*DiskPreviews, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &DiskPreviews{Dir: dir, BaseURL: baseURL}, nil
}

func (d *DiskPreviews) Generate(id string, f File) (*Preview, error) {
	name := id + extensionFor(f.ContentType)
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write preview: %w", err)
	}
	return &Preview{
		URL:     d.BaseURL + "/" + name,
		release: func() error { return os.Remove(path) },
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
