package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCrashDir is used when no crash directory has been configured.
	DefaultCrashDir = ".taskdeck/crash_logs"

	// MaxCrashReports is how many reports are kept in the crash directory.
	MaxCrashReports = 10

	crashPrefix = "crash_"
	crashExt    = ".yaml"
	maxInputLen = 500
)

// CrashContext is what the running command has told the logger about
// itself, copied into a report if the process panics.
type CrashContext struct {
	mu        sync.RWMutex
	runID     string
	lastInput string
	command   string
	version   string
	dataFile  string
	crashDir  string
}

var globalContext = newCrashContext()

func newCrashContext() *CrashContext {
	return &CrashContext{runID: uuid.NewString()}
}

func update(fn func(c *CrashContext)) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	fn(globalContext)
}

// SetCrashDir sets where crash reports go. Empty means DefaultCrashDir.
func SetCrashDir(dir string) { update(func(c *CrashContext) { c.crashDir = dir }) }

// SetVersion records the application version.
func SetVersion(v string) { update(func(c *CrashContext) { c.version = v }) }

// SetCommand records the command path being executed.
func SetCommand(cmd string) { update(func(c *CrashContext) { c.command = cmd }) }

// SetDataFile records which task file the run operates on.
func SetDataFile(path string) { update(func(c *CrashContext) { c.dataFile = path }) }

// SetLastInput records the most recent line the user typed, trimmed and
// clipped to maxInputLen bytes.
func SetLastInput(input string) {
	input = strings.TrimSpace(input)
	if len(input) > maxInputLen {
		input = input[:maxInputLen] + "... [truncated]"
	}
	update(func(c *CrashContext) { c.lastInput = input })
}

// RunID returns the identifier of the current process run.
func RunID() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	return globalContext.runID
}

// CrashReport is the YAML document written when the process panics.
type CrashReport struct {
	Time     time.Time `yaml:"time"`
	RunID    string    `yaml:"run_id"`
	Version  string    `yaml:"version,omitempty"`
	Command  string    `yaml:"command,omitempty"`
	DataFile string    `yaml:"data_file,omitempty"`
	Input    string    `yaml:"last_input,omitempty"`
	Runtime  string    `yaml:"runtime"`
	Panic    string    `yaml:"panic"`
	Stack    string    `yaml:"stack"`
}

// HandlePanic recovers a panic, writes a crash report and exits with
// status 1. It must be deferred directly in main.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	report := newCrashReport(r, debug.Stack())
	path, err := writeCrashReport(report)

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "taskdeck crashed unexpectedly.")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not write a crash report (%v):\npanic: %s\n%s", err, report.Panic, report.Stack)
	} else {
		fmt.Fprintf(os.Stderr, "Crash report: %s\n", path)
	}
	fmt.Fprintln(os.Stderr, "Tasks saved before the crash are still in the data file.")
	os.Exit(1)
}

func newCrashReport(panicValue any, stack []byte) CrashReport {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashReport{
		Time:     time.Now().UTC(),
		RunID:    globalContext.runID,
		Version:  globalContext.version,
		Command:  globalContext.command,
		DataFile: globalContext.dataFile,
		Input:    globalContext.lastInput,
		Runtime:  fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		Panic:    fmt.Sprint(panicValue),
		Stack:    string(stack),
	}
}

func encodeCrashReport(report CrashReport) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# taskdeck crash report\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeCrashReport stores report in the crash directory and prunes old
// reports. It returns the path written.
func writeCrashReport(report CrashReport) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}

	data, err := encodeCrashReport(report)
	if err != nil {
		return "", fmt.Errorf("encode crash report: %w", err)
	}

	path := filepath.Join(dir, crashFileName(report))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}

	if err := pruneCrashReports(dir, MaxCrashReports); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not prune old crash reports: %v\n", err)
	}
	return path, nil
}

func crashDir() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	if globalContext.crashDir == "" {
		return DefaultCrashDir
	}
	return globalContext.crashDir
}

// crashFileName sorts by time: crash_20250101T120000_<run>.yaml.
func crashFileName(report CrashReport) string {
	run := report.RunID
	if len(run) > 8 {
		run = run[:8]
	}
	return crashPrefix + report.Time.Format("20060102T150405") + "_" + run + crashExt
}

// pruneCrashReports deletes the oldest reports in dir until at most keep remain.
func pruneCrashReports(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), crashPrefix) && strings.HasSuffix(e.Name(), crashExt) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}

	slices.Sort(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}
