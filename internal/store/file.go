package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/reminders/internal/todo"
)

// File is a task file on disk.
type File struct {
	Path   string
	Codec  Codec
	Logger *log.Logger
}

// Open returns a File for path. format forces a codec ("json", "toml",
// "yaml"); when empty the codec is inferred from the extension.
func Open(path, format string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("task file path is empty")
	}
	var (
		codec Codec
		err   error
	)
	if format != "" {
		codec, err = CodecByName(format)
	} else {
		codec, err = CodecFor(path)
	}
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Codec: codec}, nil
}

func (f *File) logger() *log.Logger {
	if f.Logger == nil {
		return log.New(io.Discard)
	}
	return f.Logger
}

// Load reads the file into list, replacing its contents. On any error the
// list is left as it was. A missing file yields an error satisfying
// errors.Is(err, fs.ErrNotExist).
func (f *File) Load(list *todo.List) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("read task file: %w", err)
	}

	doc, err := decode(f.Codec, data)
	if err != nil {
		f.logger().Warn("task file rejected", "path", f.Path, "err", err)
		return fmt.Errorf("load %s: %w", f.Path, err)
	}
	if err := list.Deserialize(doc.Tasks); err != nil {
		f.logger().Warn("task file rejected", "path", f.Path, "err", err)
		return fmt.Errorf("load %s: %w", f.Path, err)
	}

	f.logger().Debug("task file loaded", "path", f.Path, "format", f.Codec.Name(), "tasks", list.Count())
	return nil
}

// Save writes list to the file atomically, creating parent directories.
func (f *File) Save(list *todo.List) error {
	data, err := encode(f.Codec, list.Serialize())
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task file dir: %w", err)
	}
	if err := writeFileAtomic(f.Path, data); err != nil {
		return err
	}

	f.logger().Debug("task file saved", "path", f.Path, "format", f.Codec.Name(), "tasks", list.Count())
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
