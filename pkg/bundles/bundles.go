// Package bundles reads skill bundles out of the canonical store. A
// bundle is a directory; by convention it carries a SKILL.md descriptor
// whose YAML frontmatter names and describes it. The descriptor is a
// convention, not a contract: a bundle without one still lists, it just
// has nothing to say about itself.
package bundles

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// DescriptorFile is the well-known descriptor inside each bundle.
const DescriptorFile = "SKILL.md"

// Meta is the YAML frontmatter of a bundle descriptor.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Bundle is one store entry plus whatever its descriptor declares.
type Bundle struct {
	// Name is the directory name in the store.
	Name string
	// Path is the bundle directory.
	Path string
	// Meta holds the parsed frontmatter, zero when absent or invalid.
	Meta Meta
	// Body is the descriptor markdown after the frontmatter.
	Body string
	// HasDescriptor reports whether SKILL.md exists in the bundle.
	HasDescriptor bool
}

// Title returns the frontmatter name when declared, otherwise the
// directory name.
func (b Bundle) Title() string {
	if b.Meta.Name != "" {
		return b.Meta.Name
	}
	return b.Name
}

// List returns the store's bundles in name order. Hidden entries and
// non-directories are not bundles and are skipped.
func List(fsys types.FS, store string) ([]Bundle, error) {
	logger := logging.GetLogger("bundles")

	entries, err := fsys.ReadDir(store)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read store %s", store)
	}

	var out []Bundle
	for _, de := range entries {
		if strings.HasPrefix(de.Name(), ".") || !de.IsDir() {
			continue
		}
		out = append(out, read(fsys, store, de.Name()))
	}

	logger.Debug().Str("store", store).Int("count", len(out)).Msg("listed bundles")
	return out, nil
}

// Get returns one bundle by name.
func Get(fsys types.FS, store, name string) (Bundle, error) {
	info, err := fsys.Stat(filepath.Join(store, name))
	if err != nil || !info.IsDir() {
		return Bundle{}, errors.Newf(errors.ErrNotFound, "no bundle named %q in %s", name, store)
	}
	return read(fsys, store, name), nil
}

func read(fsys types.FS, store, name string) Bundle {
	b := Bundle{Name: name, Path: filepath.Join(store, name)}

	data, err := fsys.ReadFile(filepath.Join(b.Path, DescriptorFile))
	if err != nil {
		return b
	}
	b.HasDescriptor = true
	b.Meta, b.Body = splitDescriptor(data)
	return b
}

// splitDescriptor separates YAML frontmatter from the markdown body.
// Anything that is not a well-formed frontmatter block (missing opener,
// unterminated, invalid YAML) reads as plain markdown with zero Meta.
func splitDescriptor(data []byte) (Meta, string) {
	var meta Meta
	text := string(data)

	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return meta, text
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "---" {
			continue
		}
		block := strings.Join(lines[1:i], "\n")
		if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
			return Meta{}, text
		}
		return meta, strings.Join(lines[i+1:], "\n")
	}
	return meta, text
}
