package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, in priority order.
const (
	ConfigFileName    = ".freview.yaml"
	ConfigFileNameAlt = ".freview.yml"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

var configFileUsed string

func configFileIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a freview config file.
// Returns empty string if none is found within maxUpwardSearchLevels.
func FindProjectConfig(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if path := configFileIn(dir); path != "" {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// A malformed config file is logged and skipped rather than aborting the run.
func Load(cfgFile string, projectDir string, flags *pflag.FlagSet, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	k := koanf.New(".")

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":                      def.Output,
		"report_file":                 def.ReportFile,
		"verbose":                     def.Verbose,
		"show_success":                def.ShowSuccess,
		"rules.max_findings_per_file": def.Rules.MaxFindingsPerFile,
		"rules.check_repr_methods":    def.Rules.CheckReprMethods,
		"rules.check_str_methods":     def.Rules.CheckStrMethods,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, then search upward from the project dir
	if cfgFile == "" && projectDir != "" {
		cfgFile = FindProjectConfig(projectDir)
	}
	configFileUsed = ""
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			logger.Warn("ignoring malformed config file", "path", cfgFile, "error", err)
		} else {
			configFileUsed = cfgFile
		}
	}

	// 3. Environment variables: FREVIEW_SHOW_SUCCESS -> show_success,
	// FREVIEW_RULES__SKIP -> rules.skip
	if err := k.Load(env.Provider("FREVIEW_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "FREVIEW_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority), only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "skip":
				return "rules.skip", posflag.FlagVal(flags, f)
			case "strict":
				return "rules.warning_as_error", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file loaded by the last
// Load call, if any.
func ConfigFileUsed() string {
	return configFileUsed
}
