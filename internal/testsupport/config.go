package testsupport

import (
	"path/filepath"
	"testing"

	"acmm/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.TrashDir = filepath.Join(base, "trash")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.CSP.BaseURL = "http://127.0.0.1:0/patch/"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithGameDir points the test config at an existing game root.
func WithGameDir(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.GameDir = path
	}
}

// WithRemoval overrides the removal policy.
func WithRemoval(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Install.Removal = policy
	}
}

// WithMethod overrides the install method.
func WithMethod(method string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Install.Method = method
	}
}

// WithCSPBaseURL points CSP probing at a test server.
func WithCSPBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.CSP.BaseURL = url
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
