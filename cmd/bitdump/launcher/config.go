package launcher

import (
	"fmt"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/veldt-labs/bitcodec/presets"
)

// Config aggregates everything one decode pass needs.
type Config struct {
	Input   InputConfig
	Decode  DecodeConfig
	Logging LoggingConfig
}

type InputConfig struct {
	Path string
	Hex  string
	Gzip bool
}

type DecodeConfig struct {
	Fields []Field
	Offset uint64
	Exact  bool
	JSON   bool
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
}

// fileConfig maps the TOML preset file layout:
//
//	[preset.header]
//	fields = ["version=u8/3", "compressed=bool/1", "length=u16/be/12"]
//	offset = 0
//	exact = true
type fileConfig struct {
	Presets map[string]filePreset `toml:"preset"`
}

type filePreset struct {
	Fields []string `toml:"fields"`
	Offset uint64   `toml:"offset"`
	Exact  bool     `toml:"exact"`
}

// MakeConfig merges defaults, the optional preset (built-in or from a TOML
// file), then CLI flag overrides.

func MakeConfig(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if path := ctx.String("config"); path != "" {
		if err := applyPresetFile(path, ctx.String("preset"), &cfg); err != nil {
			return Config{}, err
		}
	} else if name := ctx.String("preset"); name != "" {
		recipe, err := presets.ByName(name)
		if err != nil {
			return Config{}, err
		}
		if err := applyRecipe(recipe, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}

	if len(cfg.Decode.Fields) == 0 {
		return Config{}, fmt.Errorf("nothing to decode: pass field specs as arguments or use --config/--preset")
	}
	return cfg, nil
}

func applyPresetFile(path, name string, cfg *Config) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.WithField("key", key.String()).Warn("unknown config key")
	}

	if name == "" {
		if len(fc.Presets) != 1 {
			return fmt.Errorf("config %s defines %d presets, pick one with --preset", path, len(fc.Presets))
		}
		for n := range fc.Presets {
			name = n
		}
	}
	preset, ok := fc.Presets[name]
	if !ok {
		return fmt.Errorf("config %s has no preset %q", path, name)
	}
	return applyRecipe(presets.Recipe{
		Name:   name,
		Fields: preset.Fields,
		Offset: preset.Offset,
		Exact:  preset.Exact,
	}, cfg)
}

func applyRecipe(r presets.Recipe, cfg *Config) error {
	fields, err := ParseFields(r.Fields)
	if err != nil {
		return fmt.Errorf("preset %q: %w", r.Name, err)
	}
	cfg.Decode.Fields = fields
	cfg.Decode.Offset = r.Offset
	cfg.Decode.Exact = r.Exact
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if args := ctx.Args(); len(args) > 0 {
		fields, err := ParseFields(args)
		if err != nil {
			return err
		}
		cfg.Decode.Fields = fields
	}
	if ctx.IsSet("offset") {
		cfg.Decode.Offset = ctx.Uint64("offset")
	}
	if ctx.IsSet("exact") {
		cfg.Decode.Exact = ctx.Bool("exact")
	}
	cfg.Decode.JSON = ctx.Bool("json")

	if ctx.IsSet("in") {
		cfg.Input.Path = ctx.String("in")
	}
	cfg.Input.Hex = ctx.String("hex")
	cfg.Input.Gzip = ctx.Bool("gzip")

	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
	return nil
}
