package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Chatelo/freview/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default .freview.yaml",
		Long:  `Write a default .freview.yaml configuration file with all options documented.`,
		Example: `  # Initialize in the current directory
  freview init

  # Initialize in a project directory
  freview init ./myapp

  # Overwrite an existing config
  freview init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
			}

			if err := os.WriteFile(path, []byte(config.DefaultYAML), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			r := GetRenderer(cmd.Context())
			r.Printf("✅ Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}
