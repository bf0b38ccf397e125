package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"acmm/internal/textutil"
)

// Workspace is one scratch directory owned by a single install run.
type Workspace struct {
	Path string
}

// NewWorkspace creates <root>/<label>-<short uuid>. label is usually the
// archive name and only serves to make the directory recognizable.
func NewWorkspace(root, label string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("staging: root directory is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("staging: create root: %w", err)
	}
	name := textutil.SanitizeToken(strings.TrimSuffix(label, filepath.Ext(label)))
	path := filepath.Join(root, name+"-"+uuid.NewString()[:8])
	if err := os.Mkdir(path, 0o755); err != nil {
		return nil, fmt.Errorf("staging: create workspace: %w", err)
	}
	return &Workspace{Path: path}, nil
}

// Dir returns a named subdirectory of the workspace, creating it.
func (w *Workspace) Dir(name string) (string, error) {
	dir := filepath.Join(w.Path, textutil.SanitizeToken(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("staging: create %s: %w", name, err)
	}
	return dir, nil
}

// Remove deletes the workspace and everything extracted into it.
func (w *Workspace) Remove() error {
	if w == nil || w.Path == "" {
		return nil
	}
	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("staging: remove workspace: %w", err)
	}
	return nil
}
