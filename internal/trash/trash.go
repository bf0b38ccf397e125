package trash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"acmm/internal/config"
	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/logging"
)

const recordExt = ".toml"

// Entry describes one trashed path.
type Entry struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Origin    string    `toml:"origin"`
	TrashedAt time.Time `toml:"trashed_at"`
	SizeBytes int64     `toml:"size_bytes"`
}

// Path returns the location of the trashed payload inside root.
func (e Entry) Path(root string) string {
	return filepath.Join(root, e.ID, e.Name)
}

// Bin applies the removal policy.
type Bin struct {
	root   string
	policy string
	logger *slog.Logger
	now    func() time.Time
}

// New returns a bin rooted at root. policy is config.RemovalTrash or
// config.RemovalDelete.
func New(root, policy string, logger *slog.Logger) *Bin {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bin{
		root:   strings.TrimSpace(root),
		policy: policy,
		logger: logging.NewComponentLogger(logger, "trash"),
		now:    time.Now,
	}
}

// NewFromConfig builds a bin from the trash directory and removal policy.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Bin {
	return New(cfg.Paths.TrashDir, cfg.Install.Removal, logger)
}

// Root returns the trash directory.
func (b *Bin) Root() string { return b.root }

// Policy returns the removal policy the bin applies.
func (b *Bin) Policy() string { return b.policy }

// Dispose removes path from its current location. A path that no longer
// exists is not an error.
func (b *Bin) Dispose(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("trash: stat %q: %w", path, err)
	}
	if b.policy == config.RemovalDelete || b.root == "" {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("trash: delete %q: %w", path, err)
		}
		b.logger.DebugContext(ctx, "deleted path",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldEventType, "trash_delete"),
		)
		return nil
	}
	_, err := b.Move(ctx, path)
	return err
}

// Move relocates path into the trash and writes its record.
func (b *Bin) Move(ctx context.Context, path string) (Entry, error) {
	size, _ := fileutil.Size(path)
	entry := Entry{
		ID:        uuid.NewString(),
		Name:      filepath.Base(path),
		Origin:    path,
		TrashedAt: b.now().UTC(),
		SizeBytes: size,
	}
	target := entry.Path(b.root)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Entry{}, fmt.Errorf("trash: create entry dir: %w", err)
	}
	if err := relocate(ctx, path, target); err != nil {
		_ = os.RemoveAll(filepath.Join(b.root, entry.ID))
		return Entry{}, fmt.Errorf("trash: move %q: %w", path, err)
	}
	if err := b.writeRecord(entry); err != nil {
		return Entry{}, err
	}
	b.logger.InfoContext(ctx, "moved path to trash",
		logging.String(logging.FieldPath, path),
		logging.String("trash_id", entry.ID),
		logging.Bytes("size", entry.SizeBytes),
		logging.String(logging.FieldEventType, "trash_move"),
	)
	return entry, nil
}

// relocate renames src to dst, copying across filesystems when a rename is
// not possible.
func relocate(ctx context.Context, src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := fileutil.CopyTree(ctx, src, dst, nil); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

func (b *Bin) writeRecord(entry Entry) error {
	payload, err := toml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("trash: encode record: %w", err)
	}
	target := filepath.Join(b.root, entry.ID+recordExt)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("trash: write record: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("trash: rename record: %w", err)
	}
	return nil
}

// List returns trashed entries, newest first. Records whose payload is
// missing are skipped.
func (b *Bin) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(b.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("trash: read %q: %w", b.root, err)
	}
	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != recordExt {
			continue
		}
		entry, err := readRecord(filepath.Join(b.root, de.Name()))
		if err != nil {
			b.logger.Debug("skipping unreadable trash record",
				logging.String(logging.FieldPath, de.Name()),
				logging.Error(err),
			)
			continue
		}
		if _, err := os.Lstat(entry.Path(b.root)); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TrashedAt.After(entries[j].TrashedAt)
	})
	return entries, nil
}

func readRecord(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var entry Entry
	if err := toml.Unmarshal(data, &entry); err != nil {
		return Entry{}, err
	}
	if entry.ID == "" || entry.Name == "" {
		return Entry{}, errors.New("incomplete trash record")
	}
	return entry, nil
}

// Restore moves a trashed entry back to its origin. It refuses to overwrite
// anything already at the origin.
func (b *Bin) Restore(ctx context.Context, id string) (Entry, error) {
	entry, err := readRecord(filepath.Join(b.root, id+recordExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, failure.Wrap(failure.ErrNotFound, "trash", "restore", id, nil)
		}
		return Entry{}, fmt.Errorf("trash: read record %s: %w", id, err)
	}
	if fileutil.Exists(entry.Origin) {
		return Entry{}, failure.Wrap(failure.ErrUnsafeTarget, "trash", "restore", entry.Origin+" already exists", nil)
	}
	if err := os.MkdirAll(filepath.Dir(entry.Origin), 0o755); err != nil {
		return Entry{}, fmt.Errorf("trash: create origin parent: %w", err)
	}
	if err := relocate(ctx, entry.Path(b.root), entry.Origin); err != nil {
		return Entry{}, fmt.Errorf("trash: restore %s: %w", id, err)
	}
	if err := b.purge(id); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Empty permanently deletes every trashed entry and returns how many were
// removed. Cancellation stops between entries.
func (b *Bin) Empty(ctx context.Context) (int, error) {
	entries, err := b.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := b.purge(entry.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (b *Bin) purge(id string) error {
	if err := os.RemoveAll(filepath.Join(b.root, id)); err != nil {
		return fmt.Errorf("trash: remove entry %s: %w", id, err)
	}
	if err := os.Remove(filepath.Join(b.root, id+recordExt)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("trash: remove record %s: %w", id, err)
	}
	return nil
}
