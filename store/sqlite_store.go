package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	description TEXT NOT NULL CHECK(length(description) > 0),
	priority INTEGER NOT NULL CHECK(priority IN (1, 2, 3)),
	completed BOOLEAN NOT NULL DEFAULT FALSE
);
`

// SQLiteTaskStore implements the TaskStore interface on a single SQLite
// database file. It keeps the same whole-collection contract as the file
// store: every Save replaces the table contents in one transaction.
type SQLiteTaskStore struct {
	db       *sql.DB
	dbPath   string
	migrated bool
	log      *log.Logger
}

// NewSQLiteTaskStore opens the database at dbPath. The schema is created
// lazily so that an unreadable database degrades to an empty collection on
// Load instead of failing construction.
func NewSQLiteTaskStore(dbPath string, logger *log.Logger) (*SQLiteTaskStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if dbPath == "" || dbPath == DefaultDataFile {
		dbPath = strings.TrimSuffix(DefaultDataFile, filepath.Ext(DefaultDataFile)) + ".db"
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single process, single writer.
	db.SetMaxOpenConns(1)

	return &SQLiteTaskStore{db: db, dbPath: dbPath, log: logger}, nil
}

func (s *SQLiteTaskStore) migrate() error {
	if s.migrated {
		return nil
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	s.migrated = true
	return nil
}

// Path returns the database file location.
func (s *SQLiteTaskStore) Path() string {
	return s.dbPath
}

// Load reads every task ordered by id. Any database failure yields an empty
// collection and a logged warning.
func (s *SQLiteTaskStore) Load() []models.Task {
	tasks, err := s.listTasks()
	if err != nil {
		s.log.Warn("could not read task database, starting empty", "err", types.NewStorageReadError(s.dbPath, err))
		return []models.Task{}
	}
	if err := checkTasks(tasks); err != nil {
		s.log.Warn("task database is malformed, starting empty", "err", types.NewStorageReadError(s.dbPath, err))
		return []models.Task{}
	}
	s.log.Debug("loaded tasks", "path", s.dbPath, "count", len(tasks))
	return tasks
}

func (s *SQLiteTaskStore) listTasks() ([]models.Task, error) {
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return queryTasks(s.db)
}

func queryTasks(db *sql.DB) ([]models.Task, error) {
	rows, err := db.Query(`SELECT id, description, priority, completed FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Description, &task.Priority, &task.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Save replaces the contents of the tasks table with tasks.
func (s *SQLiteTaskStore) Save(tasks []models.Task) error {
	if err := s.replaceTasks(tasks); err != nil {
		return types.NewStorageWriteError(s.dbPath, err)
	}
	s.log.Debug("saved tasks", "path", s.dbPath, "count", len(tasks))
	return nil
}

func (s *SQLiteTaskStore) replaceTasks(tasks []models.Task) error {
	if err := s.migrate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (id, description, priority, completed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, task := range tasks {
		if _, err := stmt.Exec(task.ID, task.Description, int(task.Priority), task.Completed); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", task.ID, err)
		}
	}

	return tx.Commit()
}

// Backup writes a consistent copy of the database to destinationPath,
// replacing any existing file there.
func (s *SQLiteTaskStore) Backup(destinationPath string) error {
	if err := s.migrate(); err != nil {
		return err
	}
	if err := os.Remove(destinationPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace backup file %s: %w", destinationPath, err)
	}
	if _, err := s.db.Exec(`VACUUM INTO ?`, destinationPath); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the stored tasks with those in the database at
// sourcePath, which is opened read-only. A source that cannot be read or
// holds invalid tasks is an error and leaves the store untouched.
func (s *SQLiteTaskStore) Restore(sourcePath string) ([]models.Task, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("failed to read backup file %s: %w", sourcePath, err)
	}

	src, err := sql.Open("sqlite", "file:"+sourcePath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file %s: %w", sourcePath, err)
	}
	defer src.Close()

	tasks, err := queryTasks(src)
	if err == nil {
		err = checkTasks(tasks)
	}
	if err != nil {
		return nil, fmt.Errorf("backup file %s is not a valid task database: %w", sourcePath, err)
	}

	if err := s.Save(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Close closes the database connection.
func (s *SQLiteTaskStore) Close() error {
	return s.db.Close()
}
