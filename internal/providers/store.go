package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore persists image bytes and returns their public URL.
type ImageStore interface {
	Save(name string, data []byte) (string, error)
}

// LocalStore writes images under Dir and serves them from URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

// Save writes data to Dir/name, creating Dir when missing.
func (s LocalStore) Save(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoImage
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid image file name %q", name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return strings.TrimRight(s.URLPrefix, "/") + "/" + name, nil
}

func extForMIME(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
