package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the options file",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default options to the options file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := options.Save(options.Default(), configPath); err != nil {
				return err
			}
			fmt.Printf("  %s wrote %s\n", ui.StatusIcon(true), configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective options as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOptions(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			ui.Banner("effective options")
			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(o); err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			return nil
		},
	}
}
