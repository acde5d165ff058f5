package sync

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
)

// ProviderMode is how store bundles are exposed to a provider.
type ProviderMode string

const (
	// ModeMaterialize creates real directories and hardlinked/copied
	// files, for providers that do not traverse symlinks.
	ModeMaterialize ProviderMode = "materialize"
	// ModeLink symlinks each bundle directory individually.
	ModeLink ProviderMode = "link"
	// ModeLinkRoot symlinks the provider skills directory itself to
	// the store.
	ModeLinkRoot ProviderMode = "link-root"
)

// ParseProviderMode validates a mode string from configuration.
func ParseProviderMode(s string) (ProviderMode, error) {
	switch m := ProviderMode(s); m {
	case ModeMaterialize, ModeLink, ModeLinkRoot:
		return m, nil
	}
	return "", errors.Newf(errors.ErrConfig, "unknown provider mode: %q (want materialize, link, or link-root)", s)
}

// ExtraLink is an additional symlink a provider maintains, both sides
// absolute.
type ExtraLink struct {
	Source string
	Target string
}

// Provider is one external bundle consumer, e.g. ~/.codex.
type Provider struct {
	Name  string
	Root  string
	Mode  ProviderMode
	Links []ExtraLink
	Rules ImportRules
}

// SkillsDirName is the provider subdirectory that holds bundles.
const SkillsDirName = "skills"

// SkillsDir returns the provider's bundle directory.
func (p Provider) SkillsDir() string {
	return filepath.Join(p.Root, SkillsDirName)
}

// SyncProvider runs one provider's full cycle: import bundles into the
// store first, so the store is the source of truth, then expose the
// store back in the provider's mode along with any extra links.
func (s *Syncer) SyncProvider(p Provider, store string, doImport, doExpose bool) error {
	done := logging.LogOperationStart(s.logger, "sync provider "+p.Name)
	defer done()

	info, err := s.fs.Stat(p.Root)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrConfig, "provider %s directory not found: %s", p.Name, p.Root)
	}

	skillsDir := p.SkillsDir()

	if _, err := s.EnsureDir(store); err != nil {
		return err
	}

	if doImport {
		if err := s.ImportBundles(skillsDir, store, p.Rules); err != nil {
			return err
		}
	}

	if !doExpose {
		return nil
	}

	for _, l := range p.Links {
		if err := s.Link(l.Source, l.Target); err != nil {
			return err
		}
	}

	switch p.Mode {
	case ModeMaterialize:
		if _, err := s.EnsureDir(skillsDir); err != nil {
			return err
		}
		return s.Materialize(store, skillsDir)
	case ModeLink:
		if _, err := s.EnsureDir(skillsDir); err != nil {
			return err
		}
		return s.LinkBundles(store, skillsDir)
	case ModeLinkRoot:
		return s.Link(store, skillsDir)
	}
	return errors.Newf(errors.ErrConfig, "unknown provider mode: %q", p.Mode)
}

// LinkBundles symlinks each store bundle into providerSkills.
func (s *Syncer) LinkBundles(store, providerSkills string) error {
	entries, err := s.fs.ReadDir(store)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", store)
	}

	for _, de := range entries {
		name := de.Name()
		if s.skillIgnored(name) || strings.HasPrefix(name, ".") {
			continue
		}

		srcPath := filepath.Join(store, name)
		if !de.IsDir() {
			return errors.Newf(errors.ErrOwnership, "store bundle is not a directory: %s", srcPath)
		}

		if err := s.Link(srcPath, filepath.Join(providerSkills, name)); err != nil {
			return err
		}
	}
	return nil
}
