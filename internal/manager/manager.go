package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"acmm/internal/assets"
	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/fetcher"
	"acmm/internal/fileutil"
	"acmm/internal/finder"
	"acmm/internal/installer"
	"acmm/internal/logging"
	"acmm/internal/trash"
)

// ErrBusy reports that another process holds the mutation lock.
var ErrBusy = errors.New("another acmm process is modifying the game directory")

// Manager orchestrates operations on one game root.
type Manager struct {
	root      string
	cfg       *config.Config
	registry  *assets.Registry
	fetcher   *fetcher.Fetcher
	finder    *finder.Finder
	installer *installer.Installer
	bin       *trash.Bin
	lock      *flock.Flock
	logger    *slog.Logger
}

// CheckRoot verifies that every canonical content directory exists below
// root.
func CheckRoot(root string) error {
	if root == "" {
		return failure.Wrap(failure.ErrInvalidRoot, "manager", "check root", "game directory is not configured", nil)
	}
	if !fileutil.IsDir(root) {
		return failure.Wrap(failure.ErrInvalidRoot, "manager", "check root", root+" is not a directory", nil)
	}
	for _, rel := range assets.RequiredDirs() {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if !fileutil.IsDir(dir) {
			return failure.Wrap(failure.ErrInvalidRoot, "manager", "check root", fmt.Sprintf("missing %s", rel), nil)
		}
	}
	return nil
}

// New checks root and wires the components from cfg. An empty root falls
// back to cfg.Paths.GameDir.
func New(cfg *config.Config, root string, logger *slog.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("manager requires a configuration")
	}
	if root == "" {
		root = cfg.Paths.GameDir
	}
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	root = filepath.Clean(root)
	if logger == nil {
		logger = logging.NewNop()
	}

	registry := assets.NewRegistry(assets.BuiltinOfficial().With(cfg.Official.ByCategory()))
	bin := trash.NewFromConfig(cfg, logger)
	return &Manager{
		root:      root,
		cfg:       cfg,
		registry:  registry,
		fetcher:   fetcher.New(root, registry, logger),
		finder:    finder.New(finder.Options{PPFilterMode: cfg.Finder.PPFilterMode, Registry: registry, Logger: logger}),
		installer: installer.New(root, bin, logger),
		bin:       bin,
		lock:      flock.New(cfg.LockPath()),
		logger:    logging.NewComponentLogger(logger, "manager"),
	}, nil
}

// Root returns the checked game root.
func (m *Manager) Root() string { return m.root }

// Trash returns the removal policy.
func (m *Manager) Trash() *trash.Bin { return m.bin }

// acquire takes the mutation lock without blocking.
func (m *Manager) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(m.lock.Path()), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	ok, err := m.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		if err := m.lock.Unlock(); err != nil {
			m.logger.Warn("failed to release lock", logging.Error(err))
		}
	}, nil
}
