package store

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/josephgoksu/taskdeck/types"
)

// New builds the TaskStore selected by cfg. File formats use fsys;
// the sqlite format always uses the real filesystem.
func New(cfg types.DataConfig, fsys afero.Fs, logger *log.Logger) (TaskStore, error) {
	if strings.ToLower(cfg.Format) == formatSQLite {
		return NewSQLiteTaskStore(cfg.File, logger)
	}
	return NewFileTaskStore(fsys, cfg.File, cfg.Format, logger)
}
