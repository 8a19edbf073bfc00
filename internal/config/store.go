package config

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Store backend identifiers.
const (
	StoreBackendGitHub     = "github"
	StoreBackendFilesystem = "filesystem"
)

const (
	// EnvStoreBackend overrides the content store backend.
	EnvStoreBackend = "STORE_BACKEND"

	// EnvStoreOwner overrides the content repository owner.
	EnvStoreOwner = "STORE_OWNER"

	// EnvStoreRepo overrides the content repository name.
	EnvStoreRepo = "STORE_REPO"

	// EnvStoreBranch overrides the content repository branch.
	EnvStoreBranch = "STORE_BRANCH"

	// EnvStoreToken supplies the content repository access token.
	// The name matches the credential the content repository was
	// originally administered with.
	EnvStoreToken = "GITHUB_PAT"

	// EnvStoreContentDir overrides the local content directory for the
	// filesystem backend.
	EnvStoreContentDir = "STORE_CONTENT_DIR"

	// EnvStoreCacheTTL overrides the entry cache time-to-live.
	EnvStoreCacheTTL = "STORE_CACHE_TTL"
)

// StoreConfig contains content store configuration.
type StoreConfig struct {
	// Backend selects the store implementation: "github" or "filesystem".
	Backend string `toml:"backend"`

	// Owner, Repo, and Branch identify the GitHub content repository.
	Owner  string `toml:"owner"`
	Repo   string `toml:"repo"`
	Branch string `toml:"branch"`

	// APIBaseURL is the GitHub API root. Overridable for tests and
	// GitHub Enterprise installations.
	APIBaseURL string `toml:"api_base_url"`

	// Token authenticates against the GitHub API. Normally supplied via
	// the GITHUB_PAT environment variable rather than the config file.
	Token string `toml:"token"`

	RequestTimeout string `toml:"request_timeout"`
	MaxFileSize    string `toml:"max_file_size"`
	maxFileSizeVal int64

	// ContentDir is the content tree root for the filesystem backend.
	ContentDir string `toml:"content_dir"`

	// CacheTTL enables the entry cache when non-zero (e.g. "30s").
	CacheTTL string `toml:"cache_ttl"`
}

// RequestTimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *StoreConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// CacheTTLDuration parses and returns the cache TTL as a time.Duration.
// Zero disables caching.
func (c *StoreConfig) CacheTTLDuration() time.Duration {
	if c.CacheTTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.CacheTTL)
	return d
}

// MaxFileSizeBytes returns the maximum entry file size in bytes.
func (c *StoreConfig) MaxFileSizeBytes() int64 {
	return c.maxFileSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the store configuration.
func (c *StoreConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Owner != "" {
		c.Owner = overlay.Owner
	}
	if overlay.Repo != "" {
		c.Repo = overlay.Repo
	}
	if overlay.Branch != "" {
		c.Branch = overlay.Branch
	}
	if overlay.APIBaseURL != "" {
		c.APIBaseURL = overlay.APIBaseURL
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.ContentDir != "" {
		c.ContentDir = overlay.ContentDir
	}
	if overlay.CacheTTL != "" {
		c.CacheTTL = overlay.CacheTTL
	}

	if size, err := units.FromHumanSize(overlay.MaxFileSize); err == nil {
		c.MaxFileSize = overlay.MaxFileSize
		c.maxFileSizeVal = size
	}
}

func (c *StoreConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = StoreBackendGitHub
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.github.com"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "15s"
	}
	if c.MaxFileSize == "" {
		c.MaxFileSize = "1MB"
	}
	if c.ContentDir == "" {
		c.ContentDir = ".content"
	}
}

func (c *StoreConfig) loadEnv() {
	if v := os.Getenv(EnvStoreBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvStoreOwner); v != "" {
		c.Owner = v
	}
	if v := os.Getenv(EnvStoreRepo); v != "" {
		c.Repo = v
	}
	if v := os.Getenv(EnvStoreBranch); v != "" {
		c.Branch = v
	}
	if v := os.Getenv(EnvStoreToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvStoreContentDir); v != "" {
		c.ContentDir = v
	}
	if v := os.Getenv(EnvStoreCacheTTL); v != "" {
		c.CacheTTL = v
	}
}

func (c *StoreConfig) validate() error {
	switch c.Backend {
	case StoreBackendGitHub:
		if c.Owner == "" || c.Repo == "" {
			return fmt.Errorf("github backend requires owner and repo")
		}
	case StoreBackendFilesystem:
		if c.ContentDir == "" {
			return fmt.Errorf("filesystem backend requires content_dir")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be github or filesystem)", c.Backend)
	}

	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("invalid cache_ttl: %w", err)
		}
	}

	size, err := units.FromHumanSize(c.MaxFileSize)
	if err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_file_size must be positive")
	}
	c.maxFileSizeVal = size

	return nil
}
