package fsxlocal

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/casedesk/casedesk/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem on the local disk. All paths are
// resolved relative to the base directory; escaping it is not allowed.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates a local file system rooted at basePath,
// creating the directory when missing.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return &LocalFileSystem{basePath: absPath}, nil
}

// GetBasePath returns the resolved root directory.
func (fs *LocalFileSystem) GetBasePath() string { return fs.basePath }

func (fs *LocalFileSystem) fullPath(path string) (string, error) {
	full := filepath.Join(fs.basePath, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, fs.basePath) {
		return "", fmt.Errorf("path escapes base directory: %s", path)
	}
	return full, nil
}

func (fs *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := fs.fullPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (fs *LocalFileSystem) Stat(ctx context.Context, path string) (fsx.FileInfo, error) {
	full, err := fs.fullPath(path)
	if err != nil {
		return fsx.FileInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fsx.FileInfo{}, fmt.Errorf("file not found: %s", path)
		}
		return fsx.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	return fsx.FileInfo{
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: mime.TypeByExtension(filepath.Ext(full)),
		Metadata:    make(map[string]string),
	}, nil
}

func (fs *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := fs.fullPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (fs *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full, err := fs.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (fs *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	full, err := fs.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (fs *LocalFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}
