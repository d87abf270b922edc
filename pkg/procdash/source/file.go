package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/ukaji3/procdash-go/internal/logger"
)

// FileSource reads the dataset from a local file.
type FileSource struct {
	path string
}

// NewFileSource returns a source for the workbook at path.
func NewFileSource(path string) *FileSource {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileSource{path: filepath.Clean(path)}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Latest reads the whole file.
func (s *FileSource) Latest(ctx context.Context) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Blob{}, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}
	if err != nil {
		return Blob{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Blob{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return Blob{
		Data:    data,
		Version: ContentVersion(data),
		ModTime: info.ModTime(),
		Origin:  s.path,
	}, nil
}

// Watch calls onChange whenever the file is written, created or renamed
// into place. It watches the parent directory so editors that replace the
// file atomically are still seen. Watch blocks until ctx is done.
func (s *FileSource) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	const mask = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != s.path || evt.Op&mask == 0 {
				continue
			}
			logger.Debugf("dataset file event %s on %s", evt.Op, evt.Name)
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("dataset watcher error: %v", err)
		}
	}
}
