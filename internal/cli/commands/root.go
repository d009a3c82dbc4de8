// Package commands implements the noisegen command tree.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/cli/config"
	"github.com/gogpu/noise/internal/cli/ui"
	"github.com/gogpu/noise/internal/preset"
	"github.com/gogpu/noise/persist"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "noisegen",
		Short: "Build, render and compile procedural noise graphs",
		Long: color.CyanString(`noisegen - procedural noise toolkit

Renders noise graphs to images, compiles them to WGSL and SPIR-V, emits Go
code that rebuilds them and saves them in the binary graph format.

Graphs come from a built-in preset or from a file written by "noisegen save".
Settings are read from flags, NOISEGEN_* environment variables and
noisegen.yaml, in that order of precedence.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default ./noisegen.yaml)")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")
	pf.StringP("preset", "p", "terrain", fmt.Sprintf("Built-in graph %v", preset.Names()))
	pf.Int32P("seed", "s", 0, "Seed of the preset kernels")
	pf.StringP("input", "i", "", "Load the graph from a saved file instead of a preset")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewShaderCommand())
	rootCmd.AddCommand(NewCodeCommand())
	rootCmd.AddCommand(NewSaveCommand())

	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			ui.Field(out, "noisegen version", Version)
			ui.Field(out, "Git commit", GitCommit)
			ui.Field(out, "Build date", BuildDate)
			ui.Field(out, "Go version", runtime.Version())
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range preset.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		ui.Error(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// load reads the configuration for cmd and installs the debug logger when
// asked to.
func load(cmd *cobra.Command) (*config.Config, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cmd.Flags(), file)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		noise.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return cfg, nil
}

// graph returns the graph named by the configuration.
func graph(cfg *config.Config) (noise.Module, error) {
	if cfg.Input == "" {
		return preset.Build(cfg.Preset, cfg.Seed)
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := persist.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Input, err)
	}
	return m, nil
}

// writeOutput writes through fn to path, or to stdout when path is empty
// or "-".
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
