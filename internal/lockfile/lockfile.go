// Package lockfile keeps a single "whosfree serve" running per data
// directory. The lock records "addr|pid|tenant".
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/logger"
)

var (
	// ErrAlreadyRunning means a live server holds the lock.
	ErrAlreadyRunning = errors.New("whosfree serve is already running")
	// ErrMalformed means the lockfile could not be parsed.
	ErrMalformed = errors.New("lockfile is malformed")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Info describes the server holding the lock.
type Info struct {
	Addr   string
	PID    int
	Tenant string
}

// Lock is a held lockfile.
type Lock struct {
	path string
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.ServeLockfileName)
}

// Read parses the lockfile in dir.
func Read(dir string) (Info, error) {
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		return Info{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
		return Info{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	return Info{Addr: parts[0], PID: pid, Tenant: parts[2]}, nil
}

// IsAlive reports whether the recorded process is a running whosfree.
func (i Info) IsAlive() bool {
	process, err := findProcessFunc(i.PID)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Acquire takes the lock in dir. A lock left behind by a dead process is
// replaced; a live one yields ErrAlreadyRunning.
func Acquire(dir, addr, tenant string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	info, err := Read(dir)
	switch {
	case err == nil && info.PID != getpidFunc() && info.IsAlive():
		return nil, fmt.Errorf("%w (pid %d on %s)", ErrAlreadyRunning, info.PID, info.Addr)
	case err == nil:
		logger.Info("Replacing stale lockfile", "pid", info.PID)
	case errors.Is(err, ErrMalformed):
		logger.Warn("Replacing malformed lockfile", "path", Path(dir))
	case !os.IsNotExist(err):
		return nil, err
	}

	content := fmt.Sprintf("%s|%d|%s", addr, getpidFunc(), tenant)
	if err := os.WriteFile(Path(dir), []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: Path(dir)}, nil
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
