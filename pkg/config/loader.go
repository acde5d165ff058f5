package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment variable overrides, e.g.
// DOTSYNC_LINK_MODE=skip maps to link.mode.
const EnvPrefix = "DOTSYNC_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where LoadConfiguration looks for overrides.
type LoadOptions struct {
	// SourceRoot is searched for .dotsync.toml / dotsync.toml.
	SourceRoot string
	// ConfigFile, when set, is loaded instead of the discovered file and
	// must exist.
	ConfigFile string
	// Overrides holds flat dotted keys ("link.mode") from command-line
	// flags. They win over every other layer.
	Overrides map[string]interface{}
}

// LoadConfiguration builds the effective configuration by layering
// embedded defaults, the source-root config file, DOTSYNC_* environment
// variables and command-line overrides.
func LoadConfiguration(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	configPath, required := configFilePath(opts)
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath)
			}
		} else if required {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not readable: %s", configPath)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Default returns the built-in configuration with no overrides applied.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are fixed at build time; a parse failure
		// here is a programming error.
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return &cfg
}

// DefaultTOML returns the embedded defaults file verbatim, comments
// included. genconfig prints this.
func DefaultTOML() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

// configFilePath picks the config file to try. The bool is true when
// the file was named explicitly and therefore must exist.
func configFilePath(opts LoadOptions) (string, bool) {
	if opts.ConfigFile != "" {
		return opts.ConfigFile, true
	}
	if opts.SourceRoot == "" {
		return "", false
	}
	primary := filepath.Join(opts.SourceRoot, paths.ConfigFileName)
	if _, err := os.Stat(primary); err == nil {
		return primary, false
	}
	return filepath.Join(opts.SourceRoot, paths.AltConfigFileName), false
}
