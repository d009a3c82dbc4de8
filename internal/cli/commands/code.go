package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/noise/reconstruct"
)

// NewCodeCommand creates the code command.
func NewCodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Emit Go code that rebuilds a graph",
		Long: `Emit a Go file with a function that rebuilds the graph through the
noise package constructors.

Example:
  noisegen code -i graph.noise --package worlds --func Continent -o continent.go`,
		RunE: runCode,
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Output Go file (default stdout)")
	f.String("package", "main", "Package clause of the generated file")
	f.String("func", "BuildNoise", "Name of the generated function")
	return cmd
}

func runCode(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	root, err := graph(cfg)
	if err != nil {
		return err
	}
	src, err := reconstruct.Source(root, reconstruct.Options{
		Package:   cfg.Code.Package,
		Func:      cfg.Code.Func,
		Generator: "noisegen",
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, cfg.Output, func(w io.Writer) error {
		_, err := w.Write(src)
		return err
	})
}
