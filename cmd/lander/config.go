package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a flight would use: the first config file found
(--config, ~/.lander/configs/lander.yaml, ./configs/lander.yaml) decoded over
the defaults, with the --difficulty preset applied.

Use the output as a starting point for a custom config:
  lander config --default > ~/.lander/configs/lander.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default configuration")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagShowDefault {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	out, err := effectiveConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// effectiveConfig loads the config, applies the preset and encodes it as YAML.
func effectiveConfig(path, difficulty string) ([]byte, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyLanderPreset(&cfg, preset)

	return config.Marshal(cfg)
}
