// Package instance keeps two interactive sessions from editing the same
// diary at once. The whole document is rewritten on every save, so the last
// writer would silently drop the other session's changes.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/logger"
)

var ErrAlreadyRunning = errors.New("another diario session is already running")

var (
	findProcessFunc = ps.FindProcess
	processesFunc   = ps.Processes
	getpid          = os.Getpid
)

// Lock is a held lockfile.
type Lock struct {
	path string
}

// Acquire writes a lockfile holding this process's PID into dir. A lockfile
// left by a process that is no longer running, or that is not diario, is
// taken over.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockFileName)

	if pid, err := readPID(path); err == nil && pid != getpid() {
		if alive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		logger.Debug("Taking over stale lockfile", "path", path, "pid", pid)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	pid, err := readPID(l.path)
	if err != nil || pid != getpid() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Holder returns the PID recorded in dir's lockfile if that process is a
// running diario, or 0.
func Holder(dir string) int {
	pid, err := readPID(filepath.Join(dir, constants.LockFileName))
	if err != nil || !alive(pid) {
		return 0
	}
	return pid
}

// Others lists the PIDs of other running diario processes.
func Others() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	self := getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() != self && isDiario(p) {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errors.New("malformed lockfile")
	}
	return pid, nil
}

func alive(pid int) bool {
	p, err := findProcessFunc(pid)
	return err == nil && p != nil && isDiario(p)
}

func isDiario(p ps.Process) bool {
	return strings.HasPrefix(p.Executable(), constants.AppName)
}
