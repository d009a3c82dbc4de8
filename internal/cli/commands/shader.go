package commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/noise/internal/cli/ui"
	"github.com/gogpu/noise/shader"
)

// NewShaderCommand creates the shader command.
func NewShaderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shader",
		Short: "Compile a graph to WGSL",
		Long: `Compile a noise graph to a WGSL module, and optionally to SPIR-V.

Examples:
  noisegen shader                       # WGSL to stdout
  noisegen shader -o noise.wgsl --spirv noise.spv
  noisegen shader --listing             # instruction stream to stderr`,
		RunE: runShader,
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Output WGSL file (default stdout)")
	f.String("entry", "noise_value", "Name of the generated noise function")
	f.Bool("compute", true, "Generate a compute entry point")
	f.Int("workgroup", 64, "Compute workgroup size")
	f.String("spirv", "", "Also write SPIR-V to this file")
	f.Bool("listing", false, "Print the instruction stream to stderr")
	return cmd
}

func runShader(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	root, err := graph(cfg)
	if err != nil {
		return err
	}

	sc := cfg.Shader
	res, err := shader.NewContext(
		shader.WithEntryName(sc.Entry),
		shader.WithComputeEntry(sc.Compute),
		shader.WithWorkgroupSize(sc.Workgroup),
	).Compile(root)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, cfg.Output, func(w io.Writer) error {
		_, err := io.WriteString(w, res.Source())
		return err
	}); err != nil {
		return err
	}
	if sc.Listing {
		fmt.Fprint(cmd.ErrOrStderr(), res.Program.Listing())
	}
	if sc.SPIRV != "" {
		words, err := res.SPIRV()
		if err != nil {
			return err
		}
		if err := writeSPIRV(sc.SPIRV, words); err != nil {
			return err
		}
		ui.Success(cmd.ErrOrStderr(), "wrote %s (%d words)", sc.SPIRV, len(words))
	}
	ui.Success(cmd.ErrOrStderr(), "compiled %d instructions (coord stack %d, result stack %d)",
		res.Program.Len(), res.CoordDepth, res.ResultDepth)
	return nil
}

// writeSPIRV writes words as a little-endian SPIR-V binary.
func writeSPIRV(path string, words []uint32) error {
	buf := make([]byte, 0, 4*len(words))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return os.WriteFile(path, buf, 0o644)
}
