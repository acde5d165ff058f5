// Package config loads dotsync configuration.
//
// Values come from four layers, later ones winning: embedded defaults,
// an optional TOML file at the source root (.dotsync.toml, or
// dotsync.toml), DOTSYNC_* environment variables, and explicit
// command-line overrides.
package config

import "sort"

// Link holds dotfile linking configuration
type Link struct {
	// Dest is the destination root for links, typically "~"
	Dest string `koanf:"dest" toml:"dest"`
	// Mode is the conflict mode: skip, backup, replace or fail
	Mode string `koanf:"mode" toml:"mode"`
	// TopLevel restricts linking to top-level entries
	TopLevel bool `koanf:"top_level" toml:"top_level"`
	// Ignore lists entry names that are never linked
	Ignore []string `koanf:"ignore" toml:"ignore"`
	// IgnorePrefixes lists name prefixes that are never linked
	IgnorePrefixes []string `koanf:"ignore_prefixes" toml:"ignore_prefixes"`
}

// Skills holds skill store configuration
type Skills struct {
	// Dir is the store directory relative to the source root
	Dir string `koanf:"dir" toml:"dir"`
	// Ignore lists provider entries that are never imported
	Ignore []string `koanf:"ignore" toml:"ignore"`
	// ContentIgnore lists names skipped inside bundles when materializing
	ContentIgnore []string `koanf:"content_ignore" toml:"content_ignore"`
}

// LinkSpec is an extra link a provider maintains, with Source relative
// to the source root and Target relative to the provider root.
type LinkSpec struct {
	Source string `koanf:"source" toml:"source"`
	Target string `koanf:"target" toml:"target"`
}

// Provider describes one external skill consumer such as ~/.codex.
type Provider struct {
	// Root is the provider directory; skills live under <root>/skills
	Root string `koanf:"root" toml:"root"`
	// Mode is how store bundles are exposed: materialize, link or link-root
	Mode string `koanf:"mode" toml:"mode"`
	// Links are extra symlinks maintained alongside the skills sync
	Links []LinkSpec `koanf:"links" toml:"links,omitempty"`
	// ImportLenient skips stray non-directory entries instead of failing
	ImportLenient bool `koanf:"import_lenient" toml:"import_lenient"`
	// ImportSkipSuffixes lists name suffixes the import pass leaves alone
	ImportSkipSuffixes []string `koanf:"import_skip_suffixes" toml:"import_skip_suffixes,omitempty"`
}

// Config is the root configuration
type Config struct {
	Link      Link                `koanf:"link" toml:"link"`
	Skills    Skills              `koanf:"skills" toml:"skills"`
	Providers map[string]Provider `koanf:"providers" toml:"providers"`
}

// ProviderNames returns configured provider names in sorted order so
// multi-provider runs are deterministic.
func (c *Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
