package platform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// WriteBufferSize is the size of the buffered writer used for downloads
const WriteBufferSize = 64 * 1024

var (
	// ErrUnsafePath is returned when a relative name would escape its root
	ErrUnsafePath = errors.New("unsafe path")
)

// PathExists reports whether any filesystem entry (file, directory or
// symlink, dangling or not) exists at p
func PathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// CreateDirectoryIfNotExists creates a directory and its parents if needed
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// ValidateRelativeName checks that a slash-separated name is canonical and
// stays inside its root
func ValidateRelativeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrUnsafePath)
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return fmt.Errorf("%w: absolute name %q", ErrUnsafePath, name)
	}
	if strings.Contains(name, `\`) {
		return fmt.Errorf("%w: backslash in %q", ErrUnsafePath, name)
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return fmt.Errorf("%w: parent traversal in %q", ErrUnsafePath, name)
		}
	}
	cleaned := path.Clean(name)
	if cleaned == "." {
		return fmt.Errorf("%w: %q names the root itself", ErrUnsafePath, name)
	}
	// Only the canonical spelling is accepted, so two names never alias one file
	if cleaned != name {
		return fmt.Errorf("%w: %q is not in canonical form (%q)", ErrUnsafePath, name, cleaned)
	}
	return nil
}

// ResolveDestination joins a slash-separated relative path onto root
func ResolveDestination(root, rel string) (string, error) {
	if err := ValidateRelativeName(rel); err != nil {
		return "", err
	}
	if root == "" {
		root = "."
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

// WriteFileSynced creates or truncates dst, copies r into it through a buffered
// writer, then flushes and fsyncs before closing. Parent directories are
// created as needed. On failure the partially written file is left in place.
func WriteFileSynced(dst string, r io.Reader) (int64, error) {
	if err := CreateDirectoryIfNotExists(filepath.Dir(dst)); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	writer := bufio.NewWriterSize(file, WriteBufferSize)
	written, err := io.Copy(writer, r)
	if err != nil {
		file.Close()
		return written, fmt.Errorf("failed to write file: %w", err)
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		return written, fmt.Errorf("failed to flush file: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return written, fmt.Errorf("failed to sync file: %w", err)
	}

	if err := file.Close(); err != nil {
		return written, fmt.Errorf("failed to close file: %w", err)
	}

	return written, nil
}
