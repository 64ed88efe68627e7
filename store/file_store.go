package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

const (
	DefaultDataFile   = "tasks.json" // Relative to the working directory
	DefaultDataFormat = formatJSON
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	formatSQLite      = "sqlite"
	tempSuffix        = ".tmp"
)

//go:embed schema/tasks.schema.json
var taskListSchemaJSON string

var taskListSchema = jsonschema.MustCompileString("tasks.schema.json", taskListSchemaJSON)

// tomlDocument wraps the task list because TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []models.Task `toml:"tasks"`
}

// FileTaskStore implements the TaskStore interface using a single file.
// It supports JSON, YAML, and TOML formats. The file is rewritten
// wholesale on every Save; there is no locking between processes.
type FileTaskStore struct {
	fs       afero.Fs
	filePath string
	format   string
	log      *log.Logger
}

// NewFileTaskStore creates a store backed by filePath on fsys.
// An empty filePath uses DefaultDataFile; an empty format uses JSON.
// A nil logger discards log output.
func NewFileTaskStore(fsys afero.Fs, filePath, format string, logger *log.Logger) (*FileTaskStore, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	format = strings.ToLower(format)
	switch format {
	case "":
		format = DefaultDataFormat
	case formatJSON, formatYAML, formatTOML:
	default:
		return nil, fmt.Errorf("unsupported data format: %s. Supported formats are json, yaml, toml", format)
	}

	if filePath == "" {
		filePath = DefaultDataFile
	}
	// Users providing a full filePath are responsible for its extension.
	if filePath == DefaultDataFile && format != formatJSON {
		filePath = strings.TrimSuffix(filePath, filepath.Ext(filePath)) + "." + format
	}

	return &FileTaskStore{
		fs:       fsys,
		filePath: filePath,
		format:   format,
		log:      logger,
	}, nil
}

// Path returns the data file location.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// Format returns the serialization format of the data file.
func (s *FileTaskStore) Format() string {
	return s.format
}

// Load reads all tasks from the data file. A missing, empty, or malformed
// file yields an empty collection. Malformed content is discarded on the
// next Save, so it is logged as a warning.
func (s *FileTaskStore) Load() []models.Task {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("data file does not exist, starting empty", "path", s.filePath)
		} else {
			s.log.Warn("could not read data file, starting empty", "err", types.NewStorageReadError(s.filePath, err))
		}
		return []models.Task{}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("data file is empty", "path", s.filePath)
		return []models.Task{}
	}

	tasks, err := s.decode(data)
	if err != nil {
		s.log.Warn("data file is malformed, starting empty; its content will be replaced on the next save",
			"err", types.NewStorageReadError(s.filePath, err))
		return []models.Task{}
	}

	s.log.Debug("loaded tasks", "path", s.filePath, "count", len(tasks))
	return tasks
}

// Save writes tasks to a temporary file and renames it over the data file.
func (s *FileTaskStore) Save(tasks []models.Task) error {
	data, err := s.encode(tasks)
	if err != nil {
		return types.NewStorageWriteError(s.filePath, err)
	}
	if err := s.writeFile(s.filePath, data); err != nil {
		return types.NewStorageWriteError(s.filePath, err)
	}
	s.log.Debug("saved tasks", "path", s.filePath, "count", len(tasks))
	return nil
}

func (s *FileTaskStore) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tempFilePath := path + tempSuffix
	defer func() { _ = s.fs.Remove(tempFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempFilePath, err)
	}
	if err := s.fs.Rename(tempFilePath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempFilePath, path, err)
	}
	return nil
}

func (s *FileTaskStore) encode(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	switch s.format {
	case formatJSON:
		data, err := json.MarshalIndent(tasks, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(tomlDocument{Tasks: tasks}); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
}

func (s *FileTaskStore) decode(data []byte) ([]models.Task, error) {
	var tasks []models.Task

	switch s.format {
	case formatJSON:
		if err := validateJSONTaskList(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	case formatTOML:
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
		}
		tasks = doc.Tasks
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	if err := checkTasks(tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// validateJSONTaskList checks raw JSON against the embedded task list schema.
func validateJSONTaskList(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := taskListSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// checkTasks enforces the record invariants on decoded content: every task
// valid on its own and no id used twice.
func checkTasks(tasks []models.Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for i, t := range tasks {
		if err := models.ValidateStruct(t); err != nil {
			return fmt.Errorf("task at index %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// Backup copies the current data file to destinationPath.
func (s *FileTaskStore) Backup(destinationPath string) error {
	input, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}
	if err := s.writeFile(destinationPath, input); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the data file with the tasks read from sourcePath, which
// must be in this store's format. Unlike Load, an empty or malformed source
// is an error and the data file is left untouched.
func (s *FileTaskStore) Restore(sourcePath string) ([]models.Task, error) {
	sourceData, err := afero.ReadFile(s.fs, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file %s: %w", sourcePath, err)
	}

	if len(bytes.TrimSpace(sourceData)) == 0 {
		return nil, fmt.Errorf("backup file %s is empty", sourcePath)
	}
	tasks, err := s.decode(sourceData)
	if err != nil {
		return nil, fmt.Errorf("backup file %s is not a valid %s task list: %w", sourcePath, s.format, err)
	}

	if err := s.Save(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Close is a no-op for file stores; the file is not held open between calls.
func (s *FileTaskStore) Close() error {
	return nil
}
