package commands

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/cli/config"
	"github.com/gogpu/noise/internal/cli/ui"
	"github.com/gogpu/noise/mapping"
	"github.com/gogpu/noise/render"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a graph to an image",
		Long: `Render a noise graph to a PNG, BMP or TIFF image, chosen by the
output file extension.

Examples:
  noisegen render -o terrain.png --lighting
  noisegen render -p cells --projection sphere -o cells.tiff
  noisegen render -i graph.noise --normal --bump 4 -o normals.png`,
		RunE: runRender,
	}

	f := cmd.Flags()
	f.StringP("output", "o", "noise.png", "Output image (.png, .bmp, .tif, .tiff)")
	f.Int("width", 512, "Image width")
	f.Int("height", 256, "Image height")
	f.String("projection", "plane", fmt.Sprintf("Surface to sample %v", config.Projections))
	f.Float64("scale", 4, "Width of the sampled plane rectangle")
	f.Bool("seamless", false, "Make plane images tile")
	f.Bool("compiled", false, "Evaluate through the compiled instruction stream")
	f.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	f.String("gradient", "terrain", fmt.Sprintf("Color gradient %v", config.Gradients))
	f.Bool("lighting", false, "Shade by slope")
	f.Bool("wrap", false, "Wrap neighbors at the image edges")
	f.Bool("normal", false, "Write a normal map instead of colors")
	f.Float64("bump", 1, "Normal map bump height")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		cfg.Output = "noise.png"
	}
	format := strings.ToLower(filepath.Ext(cfg.Output))
	if _, ok := encoders[format]; !ok {
		return fmt.Errorf("unsupported image format %q", format)
	}

	root, err := graph(cfg)
	if err != nil {
		return err
	}
	m, err := builder(root, cfg.Render).Build(cmd.Context())
	if err != nil {
		return err
	}

	var img image.Image
	if cfg.Render.Normal {
		img, err = render.NormalMap(cmd.Context(), m, cfg.Render.Bump, cfg.Render.Wrap)
	} else {
		r := render.NewRenderer(gradient(cfg.Render.Gradient))
		r.Lighting, r.Wrap, r.Workers = cfg.Render.Lighting, cfg.Render.Wrap, cfg.Render.Workers
		img, err = r.Render(cmd.Context(), m)
	}
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, cfg.Output, func(w io.Writer) error {
		return encoders[format](w, img)
	}); err != nil {
		return err
	}
	lo, hi := m.Range()
	ui.Success(cmd.ErrOrStderr(), "wrote %s (%dx%d %s, values %.3f..%.3f)",
		cfg.Output, m.Width(), m.Height(), cfg.Render.Projection, lo, hi)
	return nil
}

var encoders = map[string]func(io.Writer, image.Image) error{
	".png": png.Encode,
	".bmp": bmp.Encode,
	".tif": encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func builder(root noise.Module, rc config.RenderConfig) mapping.Builder {
	base := mapping.Config{
		Source:   root,
		Width:    rc.Width,
		Height:   rc.Height,
		Workers:  rc.Workers,
		Compiled: rc.Compiled,
	}
	switch rc.Projection {
	case "cylinder":
		b := mapping.NewCylinderBuilder(root, rc.Width, rc.Height)
		b.Config = base
		return b
	case "sphere":
		b := mapping.NewSphereBuilder(root, rc.Width, rc.Height)
		b.Config = base
		return b
	}
	b := mapping.NewPlaneBuilder(root, rc.Width, rc.Height)
	b.Config = base
	b.SetBounds(0, rc.Scale, 0, rc.Scale*float64(rc.Height)/float64(rc.Width))
	b.Seamless = rc.Seamless
	return b
}

func gradient(name string) *render.Gradient {
	if name == "grayscale" {
		return render.GrayscaleGradient()
	}
	return render.TerrainGradient()
}
