package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/diary"
	"github.com/julianstephens/diario/internal/instance"
	"github.com/julianstephens/diario/internal/keyring"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/storage"
	"github.com/julianstephens/diario/internal/storage/postgres"
	"github.com/julianstephens/diario/internal/storage/sqlite"
)

const diskvScheme = "diskv://"

// Interactive reports whether stdin is a terminal forms can be shown on.
var Interactive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ErrEditorOpen is returned by commands that change the diary while an
// editor session holds it. The editor rewrites the whole document on its
// next save, so the change would be lost.
var ErrEditorOpen = errors.New("a diario editor is open on this diary")

// EditorPID returns the PID of the editor session holding dir, or 0.
var EditorPID = instance.Holder

type Context struct {
	Store *diary.Store
	Clock clock.Clock
	// ConfigPath is the resolved --config value: a file, a diskv:// directory
	// or a PostgreSQL connection string.
	ConfigPath string
	Out        io.Writer
	In         io.Reader
}

// NewContext opens the provider named by config without loading it.
func NewContext(config string, clk clock.Clock) (*Context, error) {
	if clk == nil {
		clk = clock.New()
	}
	provider, err := OpenProvider(config)
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:      diary.New(provider, clk),
		Clock:      clk,
		ConfigPath: config,
		Out:        os.Stdout,
		In:         os.Stdin,
	}, nil
}

// ResolveConfig picks the storage location. An explicit --config wins; then a
// connection string from DIARIO_DB_CONNECTION or the OS keyring; then the
// default JSON file.
func ResolveConfig(config string) (string, error) {
	if config != "" {
		return ExpandPath(config)
	}
	if connStr, src, err := keyring.Resolve(); err == nil {
		logger.Debug("Using connection string", "source", src)
		return connStr, nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return ExpandPath(constants.DefaultConfigPath)
}

// OpenProvider selects a storage backend from the config value:
// postgres:// URLs use PostgreSQL, diskv://dir uses a diskv directory,
// *.db and *.sqlite files use SQLite and anything else is a JSON file.
func OpenProvider(config string) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(config):
		if _, err := postgres.ValidateConnString(config); err != nil && !fromSecretSource(config) {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'diario keyring set' or export %s instead", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil
	case strings.HasPrefix(config, diskvScheme):
		dir, err := ExpandPath(strings.TrimPrefix(config, diskvScheme))
		if err != nil {
			return nil, err
		}
		return storage.NewDiskvStore(dir), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.NewStore(path), nil
	default:
		return storage.NewJSONStore(path), nil
	}
}

// fromSecretSource reports whether a connection string came from the
// environment or the keyring, where embedded passwords are acceptable.
func fromSecretSource(config string) bool {
	if config == strings.TrimSpace(os.Getenv(constants.EnvDBConnection)) {
		return true
	}
	stored, err := keyring.Get()
	return err == nil && stored == config
}

func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

// ConfigDir is the directory holding logs, backups and the lockfile. Remote
// backends use the directory of the default config file.
func (c *Context) ConfigDir() string {
	switch {
	case postgres.IsConnString(c.ConfigPath):
		p, _ := ExpandPath(constants.DefaultConfigPath)
		return filepath.Dir(p)
	case strings.HasPrefix(c.ConfigPath, diskvScheme):
		p, _ := ExpandPath(strings.TrimPrefix(c.ConfigPath, diskvScheme))
		return filepath.Dir(filepath.Clean(p))
	default:
		return filepath.Dir(c.ConfigPath)
	}
}

func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(filepath.Join(c.ConfigDir(), constants.BackupDirName), c.Clock)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(c.Store); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// RequireNoEditor fails with ErrEditorOpen while another process runs the
// editor on this diary.
func (c *Context) RequireNoEditor() error {
	if pid := EditorPID(c.ConfigDir()); pid != 0 && pid != os.Getpid() {
		return fmt.Errorf("%w (pid %d): close it first, or restore and change settings from inside the editor", ErrEditorOpen, pid)
	}
	return nil
}

// LoadStore loads the diary, pointing at the recovery commands when the
// stored document is unreadable.
func (c *Context) LoadStore() error {
	if c.Store.Loaded() {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		if errors.Is(err, diary.ErrCorrupt) {
			return fmt.Errorf("%w\nrecover with 'diario backup restore <file>' or 'diario import <file>'", err)
		}
		return err
	}
	return nil
}

// LoadForReplace loads the store for commands that overwrite the whole
// document. A corrupt document is tolerated since it is about to be replaced.
func (c *Context) LoadForReplace() error {
	err := c.LoadStore()
	if err == nil {
		return nil
	}
	if errors.Is(err, diary.ErrCorrupt) {
		logger.Warn("Replacing corrupt diary", "config", c.ConfigPath, "error", err)
		return nil
	}
	return err
}

// ResolveDate turns a --date value into a day key. Empty means today.
func (c *Context) ResolveDate(s string) (string, error) {
	now := c.Clock.Now()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today", "hoje":
		return datekey.Encode(now), nil
	case "yesterday", "ontem":
		return datekey.Encode(now.AddDate(0, 0, -1)), nil
	case "tomorrow", "amanhã", "amanha":
		return datekey.Encode(now.AddDate(0, 0, 1)), nil
	}
	key, err := datekey.Normalize(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return key, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question. On a terminal it shows a huh confirm;
// otherwise it reads one answer line from c.In.
func (c *Context) Confirm(title, description string) (bool, error) {
	if Interactive() {
		ok := false
		err := huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Sim").
			Negative("Não").
			Value(&ok).
			Run()
		return ok, err
	}

	c.Println(title)
	if description != "" {
		c.Println(description)
	}
	c.Printf("Continue? [y/N]: ")
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}
