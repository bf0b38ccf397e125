package config

const (
	defaultConfigPath         = "~/.config/acmm/config.toml"
	defaultStagingDir         = "~/.cache/acmm/staging"
	defaultTrashDir           = "~/.local/share/acmm/trash"
	defaultStateDir           = "~/.local/state/acmm"
	defaultStagingMaxAgeHours = 24
	defaultCSPBaseURL         = "https://acstuff.club/patch/"
	defaultCSPStartVersion    = "0.1.60"
	defaultCSPMaxMisses       = 5
	defaultCSPTimeoutSeconds  = 15
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
)

// Install methods.
const (
	MethodUpdate = "update"
	MethodClean  = "clean"
)

// Removal policies.
const (
	RemovalTrash  = "trash"
	RemovalDelete = "delete"
)

// PPFilter discovery modes.
const (
	PPFilterPermissive   = "permissive"
	PPFilterConservative = "conservative"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			TrashDir:   defaultTrashDir,
			StateDir:   defaultStateDir,
		},
		Install: Install{
			Method:             MethodUpdate,
			Removal:            RemovalTrash,
			StagingMaxAgeHours: defaultStagingMaxAgeHours,
		},
		Finder: Finder{
			PPFilterMode: PPFilterPermissive,
		},
		CSP: CSP{
			BaseURL:        defaultCSPBaseURL,
			StartVersion:   defaultCSPStartVersion,
			MaxMisses:      defaultCSPMaxMisses,
			TimeoutSeconds: defaultCSPTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
