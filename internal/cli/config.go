// Config loading for the kanban CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/kanban/internal/store"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyDefaultBoard = "default_board"
	cfgKeyLogLevel     = "log_level"
)

// configHeader is written above the generated settings.
const configHeader = `# kanban configuration
#
# data_dir:      board directory (overridden by --data-dir; default <config dir>/boards)
# sync_strategy: immediate (save after every change) or on_close
# default_board: board used when --board is not given
# log_level:     debug, info, warn or error
`

// configFile holds the structure of config.yaml.
type configFile struct {
	DataDir      string `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy" json:"sync_strategy"`
	DefaultBoard string `yaml:"default_board" json:"default_board"`
	LogLevel     string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

func defaultConfigFile() configFile {
	return configFile{
		SyncStrategy: types.SyncImmediate,
		DefaultBoard: store.DefaultBoardTitle,
	}
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; the defaults apply.
func loadConfig(configDir string) (configFile, error) {
	def := defaultConfigFile()

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeySyncStrategy, def.SyncStrategy)
	v.SetDefault(cfgKeyDefaultBoard, def.DefaultBoard)
	v.SetDefault(cfgKeyLogLevel, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return configFile{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := configFile{
		DataDir:      v.GetString(cfgKeyDataDir),
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
		DefaultBoard: v.GetString(cfgKeyDefaultBoard),
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}
	if cfg.DefaultBoard == "" {
		cfg.DefaultBoard = def.DefaultBoard
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(configDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	def := defaultConfigFile()
	data, err := yaml.Marshal(&def)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// setConfigValue sets key in config.yaml, writing the default file first
// when there is none. Other settings and comments are kept.
func setConfigValue(configDir, key, value string) error {
	if _, err := writeConfigIfMissing(configDir); err != nil {
		return err
	}
	path := filepath.Join(configDir, configFileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parse config: %s is not a mapping", path)
	}

	m := doc.Content[0]
	found := false
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1].SetString(value)
			found = true
			break
		}
	}
	if !found {
		k, v := &yaml.Node{}, &yaml.Node{}
		k.SetString(key)
		v.SetString(value)
		m.Content = append(m.Content, k, v)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the settings in effect after applying flags, environment and config.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eff := a.settings
			eff.DataDir = a.dataDir
			eff.LogLevel = a.log.GetLevel().String()
			if a.flags.board != "" {
				eff.DefaultBoard = a.flags.board
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, map[string]any{
					"config_dir": a.configDir,
					"settings":   eff,
				})
			}
			data, err := yaml.Marshal(&eff)
			if err != nil {
				return systemError(fmt.Errorf("marshal config: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", a.configDir, data)
			return nil
		},
	}
}
