// Package backup writes the diary document to dated JSON files and restores
// it from them.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/diary"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/storage"
	"github.com/julianstephens/diario/internal/validation"
)

// Source is the document being backed up.
type Source interface {
	Snapshot() ([]byte, error)
}

// Target accepts a replacement document. Verify reports whether ReplaceAll
// would accept data; ReplaceAll must leave the current document untouched
// when data is rejected.
type Target interface {
	Source
	Verify(data []byte) error
	ReplaceAll(data []byte) error
}

// rawSource is implemented by stores that can hand out their stored bytes
// even when those could not be loaded.
type rawSource interface {
	Raw() ([]byte, error)
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path string
	Date time.Time
	Seq  int // 0 for the first backup of a day, N for the "-N" suffix
	Size int64
}

// Manager handles backup operations
type Manager struct {
	backupDir string
	clock     clock.Clock
}

// NewManager creates a manager storing backups under dir.
func NewManager(dir string, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.New()
	}
	return &Manager{backupDir: dir, clock: clk}
}

// DirFor returns the backup directory that sits next to a config file.
func DirFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), constants.BackupDirName)
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// Export writes the full document to a dated backup file in dir.
func (m *Manager) Export(src Source, dir string) (string, error) {
	data, err := src.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to read diary: %w", err)
	}
	return m.write(dir, data)
}

// CreateBackup writes a backup into the backup directory and prunes old ones.
func (m *Manager) CreateBackup(src Source) (string, error) {
	return m.createBackup(src, false)
}

// createBackup skips rotation for the copy taken right before a restore so
// that the restore never deletes the file it is restoring from.
func (m *Manager) createBackup(src Source, skipRotation bool) (string, error) {
	data, err := src.Snapshot()
	if err != nil {
		raw, ok := src.(rawSource)
		if !ok {
			return "", fmt.Errorf("failed to read diary: %w", err)
		}
		// keep whatever is stored, even if it does not parse
		if data, err = raw.Raw(); err != nil {
			return "", fmt.Errorf("failed to read stored diary: %w", err)
		}
	}

	path, err := m.write(m.backupDir, data)
	if err != nil {
		return "", err
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

func (m *Manager) write(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		data = pretty.Bytes()
	}

	path, err := m.nextPath(dir)
	if err != nil {
		return "", err
	}
	if err := storage.WriteFileAtomic(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Backup written", "path", path, "bytes", len(data))
	return path, nil
}

// nextPath returns diario-backup-YYYY-MM-DD.json, or the first free -N
// variant when that name is taken.
func (m *Manager) nextPath(dir string) (string, error) {
	date := m.clock.Now().Format(constants.DateFormat)
	path := filepath.Join(dir, constants.BackupFilePrefix+date+constants.BackupFileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 1000 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(dir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, date, n, constants.BackupFileSuffix))
	}
}

// ParseName extracts the date and sequence number from a backup file name.
func ParseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if len(rest) < len(constants.DateFormat) {
		return time.Time{}, 0, false
	}

	date, err := time.ParseInLocation(constants.DateFormat, rest[:len(constants.DateFormat)], time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}

	seq := 0
	if suffix := rest[len(constants.DateFormat):]; suffix != "" {
		if suffix[0] != '-' {
			return time.Time{}, 0, false
		}
		n, err := strconv.Atoi(suffix[1:])
		if err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
	}
	return date, seq, true
}

// ListBackups returns a list of all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, seq, ok := ParseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path: filepath.Join(m.backupDir, entry.Name()),
			Date: date,
			Seq:  seq,
			Size: info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Date.Equal(backups[j].Date) {
			return backups[i].Date.After(backups[j].Date)
		}
		return backups[i].Seq > backups[j].Seq
	})
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// Restore replaces the diary with the contents of a backup file. The current
// document is saved to the backup directory first. Returns the path of that
// safety copy.
func (m *Manager) Restore(dst Target, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return m.RestoreReader(dst, f)
}

// RestoreReader is Restore for data that does not come from a file.
func (m *Manager) RestoreReader(dst Target, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}
	if !json.Valid(data) {
		return "", fmt.Errorf("%w: %w", diary.ErrInvalidBackup, &validation.Error{
			Fields: map[string]string{"file": "not valid JSON"},
		})
	}
	// no safety copy for a file that would be rejected anyway
	if err := dst.Verify(data); err != nil {
		return "", err
	}

	safety, err := m.createBackup(dst, true)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("failed to back up current diary before restore: %w", err)
		}
		// nothing stored yet, nothing to keep
		safety = ""
	}

	if err := dst.ReplaceAll(data); err != nil {
		return safety, err
	}
	return safety, nil
}
