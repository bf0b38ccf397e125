package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"acmm/internal/failure"
	"acmm/internal/fileutil"
	"acmm/internal/validate"
)

// Registry constructs assets against one set of official allowlists.
type Registry struct {
	official Official
}

// NewRegistry returns a registry classifying origins with official.
func NewRegistry(official Official) *Registry {
	return &Registry{official: official}
}

var defaultRegistry = NewRegistry(builtinOfficial)

// DefaultRegistry returns the registry backed by the embedded allowlists.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Official returns the allowlists used for origin classification.
func (r *Registry) Official() Official {
	return r.official
}

// Asset is one validated piece of content. Everything except kind and path
// is derived from the filesystem on demand.
type Asset struct {
	kind     Kind
	path     string
	lang     validate.AppLanguage
	parent   *Asset
	registry *Registry
}

// New validates path against kind using the default registry.
func New(kind Kind, path string) (*Asset, error) {
	return defaultRegistry.New(kind, path)
}

// New validates path against kind and returns the asset. A structural
// mismatch yields an error marked failure.ErrInvalidAsset.
func (r *Registry) New(kind Kind, path string) (*Asset, error) {
	return r.newAsset(kind, path, nil)
}

func (r *Registry) newAsset(kind Kind, path string, parent *Asset) (*Asset, error) {
	desc, ok := descriptors[kind]
	if !ok {
		return nil, failure.Wrap(failure.ErrUnimplemented, "assets", "new", fmt.Sprintf("unknown kind %d", int(kind)), nil)
	}
	path = filepath.Clean(path)
	if !desc.Validate(path) {
		return nil, failure.Wrap(failure.ErrInvalidAsset, "assets", "new", fmt.Sprintf("%s does not match %s signature", path, desc.Name), nil)
	}
	a := &Asset{kind: kind, path: path, parent: parent, registry: r}
	if kind == KindApp {
		a.lang = validate.DetectApp(path)
	}
	return a, nil
}

// Kind returns the asset kind.
func (a *Asset) Kind() Kind { return a.kind }

// Path returns the current filesystem location of the asset root.
func (a *Asset) Path() string { return a.path }

// Parent returns the owning asset of a skin or layout, if known.
func (a *Asset) Parent() *Asset { return a.parent }

// Language reports the implementation language of an app.
func (a *Asset) Language() validate.AppLanguage { return a.lang }

// ID returns the asset identity: its base name, without the .ini suffix for
// filters, and csp_v<version> for the shaders patch.
func (a *Asset) ID() string {
	base := filepath.Base(a.path)
	switch a.kind {
	case KindPPFilter:
		if ext := filepath.Ext(base); strings.EqualFold(ext, ".ini") {
			return strings.TrimSuffix(base, ext)
		}
		return base
	case KindCSP:
		version := a.CSPVersion()
		if version == "" {
			return "csp"
		}
		return "csp_v" + version
	default:
		return base
	}
}

// Size returns the byte sum of every file the asset owns. Layouts include
// their ui directory; CSP counts dwrite.dll and extension/.
func (a *Asset) Size() (int64, error) {
	switch a.kind {
	case KindTrackLayout:
		size, err := fileutil.Size(a.path)
		if err != nil {
			return 0, err
		}
		if ui := a.UIDir(); ui != "" {
			uiSize, err := fileutil.Size(ui)
			if err != nil {
				return 0, err
			}
			size += uiSize
		}
		return size, nil
	case KindCSP:
		var total int64
		for _, part := range a.CSPParts() {
			size, err := fileutil.Size(part)
			if err != nil {
				return 0, err
			}
			total += size
		}
		return total, nil
	default:
		return fileutil.Size(a.path)
	}
}

// Moved returns a copy of the asset located at path, revalidated.
func (a *Asset) Moved(path string) (*Asset, error) {
	return a.registry.newAsset(a.kind, path, a.parent)
}

// Exists reports whether the asset root is still on disk.
func (a *Asset) Exists() bool {
	_, err := os.Stat(a.path)
	return err == nil
}

// files returns the role templates for this asset.
func (a *Asset) files() map[Role]string {
	desc := descriptors[a.kind]
	if a.kind == KindApp {
		return desc.LangFiles[a.lang]
	}
	return desc.Files
}

// file resolves role to an existing path, or "" when absent.
func (a *Asset) file(role Role) string {
	tmpl, ok := a.files()[role]
	if !ok {
		return ""
	}
	return resolveTemplate(a.path, tmpl)
}

func resolveTemplate(base, tmpl string) string {
	rel := strings.ReplaceAll(tmpl, "{id}", filepath.Base(base))
	if rel == "." {
		return base
	}
	resolved, ok := fileutil.Resolve(base, rel)
	if !ok || !fileutil.IsFile(resolved) {
		return ""
	}
	return resolved
}
