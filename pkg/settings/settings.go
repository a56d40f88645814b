// pkg/settings/settings.go
// Package settings loads toolkit configuration with koanf: hardcoded
// defaults, then an optional YAML file, then command-line flags, in
// increasing precedence.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	goyaml "gopkg.in/yaml.v3"
)

// Settings holds the toolkit's own configuration. This is distinct from
// the MCP configuration document the toolkit writes for the host tool.
type Settings struct {
	Log     LogSettings `koanf:"log"`
	NoColor bool        `koanf:"no-color"`

	// McpConfig overrides where the MCP configuration document is
	// written. Relative paths resolve against the working directory.
	McpConfig string `koanf:"mcp-config"`
}

// LogSettings controls diagnostic output.
type LogSettings struct {
	Level string `koanf:"level"`
}

// Default returns the baseline settings used when no file or flag
// overrides them.
func Default() Settings {
	return Settings{
		Log:       LogSettings{Level: "warn"},
		NoColor:   false,
		McpConfig: ".mcp.json",
	}
}

// defaultsAsMap flattens Default() for koanf's confmap.Provider so koanf
// knows every key up front.
func defaultsAsMap() map[string]interface{} {
	def := Default()
	return map[string]interface{}{
		"log.level":  def.Log.Level,
		"no-color":   def.NoColor,
		"mcp-config": def.McpConfig,
	}
}

// BindFlags defines command-line flags corresponding to configuration
// settings. Flag names match koanf keys so posflag maps them directly.
func BindFlags(flags *pflag.FlagSet) {
	def := Default()
	flags.String("log.level", def.Log.Level, "Log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", def.NoColor, "Disable colored output")
	flags.String("mcp-config", def.McpConfig, "Path of the MCP configuration document")
}

// DefaultFilePath returns the conventional settings file location,
// ~/.config/ftk/config.yaml.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ftk", "config.yaml")
}

// Load assembles the final settings. A missing settings file is fine; a
// present but unreadable or malformed one is an error. flags may be nil.
func Load(filePath string, flags *pflag.FlagSet) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsAsMap(), "."), nil); err != nil {
		return Settings{}, fmt.Errorf("load default settings: %w", err)
	}

	if filePath != "" {
		if _, err := os.Stat(filePath); err == nil {
			if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
				return Settings{}, fmt.Errorf("load settings file %s: %w", filePath, err)
			}
		}
	}

	if flags != nil {
		// posflag needs the koanf instance to only apply flags the user
		// actually changed over keys that already exist.
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Settings{}, fmt.Errorf("load command-line flags: %w", err)
		}
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// WriteSample writes a starter settings file to path, refusing to
// overwrite an existing one.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file already exists: %s", path)
	}

	def := Default()
	data, err := goyaml.Marshal(map[string]interface{}{
		"log": map[string]interface{}{
			"level": def.Log.Level,
		},
		"no-color":   def.NoColor,
		"mcp-config": def.McpConfig,
	})
	if err != nil {
		return fmt.Errorf("marshal sample settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sample settings: %w", err)
	}
	return nil
}
