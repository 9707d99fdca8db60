// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the resolved installer configuration.
	Config struct {
		// InstallRoot is the directory the repository and launcher land in.
		// Empty means the platform default under the user's home.
		InstallRoot string `mapstructure:"install_root"`

		// RepoURL is the source repository; overriding it points the
		// installer at a mirror.
		RepoURL string `mapstructure:"repo_url"`

		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose passes child-process output through to the terminal.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultRepoURL is the canonical project repository.
const DefaultRepoURL = "https://github.com/avatar-generator/avatar-generator.git"

// DefaultConfig returns the build-time defaults.
func DefaultConfig() *Config {
	return &Config{
		RepoURL: DefaultRepoURL,
	}
}
