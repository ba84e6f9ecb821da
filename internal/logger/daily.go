package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dailyLayout = "20060102"

// DailyFile is a zapcore.WriteSyncer that writes to <dir>/<name>_<YYYYMMDD>.log
// and switches to a new file on the first write after the local date changes.
type DailyFile struct {
	mu   sync.Mutex
	dir  string
	name string
	now  func() time.Time
	day  string
	file *os.File
}

// NewDailyFile creates dir if needed and opens today's file.
func NewDailyFile(dir, name string) (*DailyFile, error) {
	return newDailyFile(dir, name, time.Now)
}

func newDailyFile(dir, name string, now func() time.Time) (*DailyFile, error) {
	if name == "" {
		return nil, fmt.Errorf("log file name is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}

	d := &DailyFile{dir: dir, name: name, now: now}
	if err := d.openFor(now()); err != nil {
		return nil, err
	}
	return d, nil
}

// Write appends p to the current day's file.
func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now := d.now(); now.Format(dailyLayout) != d.day {
		if err := d.openFor(now); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p) //nolint:wrapcheck // zap reports write errors itself
}

// Sync flushes the current file.
func (d *DailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	return d.file.Sync() //nolint:wrapcheck // zap reports sync errors itself
}

// Close closes the current file.
func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// Path returns the file currently written to.
func (d *DailyFile) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pathFor(d.day)
}

func (d *DailyFile) pathFor(day string) string {
	return filepath.Join(d.dir, fmt.Sprintf("%s_%s.log", d.name, day))
}

// openFor must be called with mu held (or before d is shared).
func (d *DailyFile) openFor(t time.Time) error {
	day := t.Format(dailyLayout)
	path := d.pathFor(day)

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file = f
	d.day = day
	return nil
}
