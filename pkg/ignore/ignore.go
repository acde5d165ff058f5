// Package ignore decides which entry names dotfile linking skips.
//
// Linking a repo into $HOME would otherwise pick up project scaffolding
// (.git, README, build output) that has no business being symlinked, so
// every walk consults a Filter before touching an entry.
package ignore

import "strings"

// DefaultNames are entry names skipped by dotfile linking. The tool's
// own config file is in the list: it configures the repo, it is not a
// dotfile.
var DefaultNames = []string{
	".git",
	".DS_Store",
	".dotsync.toml",
	"dotsync.toml",
	"README",
	"README.md",
	"LICENSE",
	"LICENSE.md",
	"node_modules",
	"target",
	"dist",
	"scripts",
	".vscode",
	"promptkit",
	"skills",
}

// DefaultPrefixes are name prefixes skipped by dotfile linking, so
// variants like README.rst or LICENSE-MIT are caught too.
var DefaultPrefixes = []string{"README", "LICENSE"}

// Filter reports whether an entry name should be ignored.
type Filter struct {
	names    map[string]struct{}
	prefixes []string
}

// New creates a Filter from exact names and name prefixes.
func New(names, prefixes []string) *Filter {
	f := &Filter{
		names:    make(map[string]struct{}, len(names)),
		prefixes: append([]string(nil), prefixes...),
	}
	for _, n := range names {
		f.names[n] = struct{}{}
	}
	return f
}

// Default returns a Filter with the built-in ignore rules.
func Default() *Filter {
	return New(DefaultNames, DefaultPrefixes)
}

// ShouldIgnore reports whether name matches an exact ignore name or
// one of the ignore prefixes.
func (f *Filter) ShouldIgnore(name string) bool {
	if _, ok := f.names[name]; ok {
		return true
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
