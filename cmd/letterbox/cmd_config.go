package main

import (
	"fmt"
	"os"

	"letterbox/internal/config"
	"letterbox/internal/puzzle"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the letterbox config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Writes the default configuration. With --force an existing file is
replaced, which also repairs a file that no longer loads.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipConfig: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// examplesCmd lists the built-in puzzles
var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the built-in example puzzles",
	Args:  cobra.NoArgs,
	RunE:  runExamples,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile()
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c := cfg
	if c == nil {
		c = config.DefaultConfig()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runExamples(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	for i, p := range puzzle.Examples {
		mark := ""
		if p == puzzle.Default {
			mark = "  (default)"
		}
		fmt.Fprintf(w, "Example %d: %s%s\n", i+1, p, mark)
	}
	return nil
}
