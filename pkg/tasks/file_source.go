package tasks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mmcdole/signin-widget/pkg/logging"
	"github.com/spf13/afero"
)

// FileSource implements Source by reading a JSON array of tasks
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a new FileSource. A nil fs means the OS filesystem.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSource{
		fs:   fs,
		path: path,
	}
}

// LoadTasks implements Source
func (s *FileSource) LoadTasks() ([]Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.App.Debug("Task file not found", "path", s.path)
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	var list []Task
	if err := json.Unmarshal(data, &list); err != nil {
		logging.App.Debug("Error parsing task file", "path", s.path, "error", err)
		return nil, fmt.Errorf("parsing task file: %w", err)
	}

	if err := Validate(list); err != nil {
		logging.App.Debug("Task file failed validation", "path", s.path, "error", err)
		return nil, err
	}

	logging.App.Debug("Loaded tasks", "path", s.path, "count", len(list))
	return list, nil
}
