// Package cmd is the particles command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/ui"
)

var version = "0.3.0"

var (
	configPath string
	configURL  string
)

var rootCmd = &cobra.Command{
	Use:   "particles",
	Short: "particles: linked particles that repel from the pointer and page elements",
	Long: ui.Brand.Sprint("particles") + " draws particles linked by proximity, optionally across canvas edges,\n" +
		ui.Subtle.Sprint("and pushes them away from the pointer, clicks and laid out elements"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("particles {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "particles.toml", "Options file (.toml or .json)")
	rootCmd.PersistentFlags().StringVar(&configURL, "url", "", "Load options from a URL instead of the options file")

	rootCmd.AddCommand(
		runCmd(),
		snapshotCmd(),
		configCmd(),
	)
}

// Execute runs the root command and prints any error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Printf("particles: %v\n", err)
	}
	return err
}

// loadOptions reads --url, else --config, else the defaults when the file
// is the untouched default path and does not exist
func loadOptions(ctx context.Context, cmd *cobra.Command) (*options.Options, error) {
	if configURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return options.LoadURL(ctx, http.DefaultClient, configURL)
	}
	o, err := options.Load(configPath)
	if err == nil {
		return o, nil
	}
	if !cmd.Flags().Changed("config") && errors.Is(err, fs.ErrNotExist) {
		return options.Default(), nil
	}
	return nil, fmt.Errorf("load %s: %w", configPath, err)
}
