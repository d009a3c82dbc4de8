package commands

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/cli/ui"
	"github.com/gogpu/noise/persist"
)

// NewSaveCommand creates the save command.
func NewSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a graph in the binary graph format",
		Long: `Save a preset, or re-save a loaded graph, in the binary graph format
read back by --input.

Example:
  noisegen save -p marble -s 7 -o marble.noise`,
		RunE: runSave,
	}
	cmd.Flags().StringP("output", "o", "", "Output file")
	return cmd
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	if cfg.Output == "" || cfg.Output == "-" {
		return errors.New("save needs an output file (-o)")
	}
	root, err := graph(cfg)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, cfg.Output, func(w io.Writer) error {
		return persist.Save(w, root)
	}); err != nil {
		return err
	}
	nodes, err := noise.Modules(root)
	if err != nil {
		return err
	}
	ui.Success(cmd.ErrOrStderr(), "saved %s (%d modules)", cfg.Output, len(nodes))
	return nil
}
