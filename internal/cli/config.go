package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/export"
)

// Config is the contents of config.toml. Flags given on the command line
// take precedence over it.
//
//	notation = "plantuml"
//
//	[plantuml]
//	command = ["java", "-jar", "/opt/plantuml.jar"]
//	limit_size = 10000
//
//	[log]
//	verbose = false
type Config struct {
	Notation string         `toml:"notation"`
	PlantUML PlantUMLConfig `toml:"plantuml"`
	Log      LogConfig      `toml:"log"`
}

// PlantUMLConfig configures the external plantuml renderer.
type PlantUMLConfig struct {
	Command   []string `toml:"command"`
	LimitSize int      `toml:"limit_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Notation: string(export.NotationPlantUML),
		PlantUML: PlantUMLConfig{
			Command:   []string{export.DefaultPlantUMLCommand},
			LimitSize: export.DefaultLimitSize,
		},
	}
}

// readConfig decodes the TOML file at path on top of the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func readConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if _, err := export.ParseNotation(cfg.Notation); err != nil {
		return err
	}
	if len(cfg.PlantUML.Command) == 0 || cfg.PlantUML.Command[0] == "" {
		return errs.New(errs.ErrCodeInvalidInput, "plantuml.command cannot be empty")
	}
	if cfg.PlantUML.LimitSize < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "plantuml.limit_size must be positive")
	}
	return nil
}

// loadConfig reads the config file named by --config, or the default one.
// A missing default file is not an error; a missing explicit one is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFileName)
	}

	cfg, err := readConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return fmt.Errorf("load config: %w", err)
	}

	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
