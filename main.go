package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xcanals/meshform/pkg/config"
	"github.com/xcanals/meshform/pkg/export"
	"github.com/xcanals/meshform/pkg/graph"
	"github.com/xcanals/meshform/pkg/kernel"
	"github.com/xcanals/meshform/pkg/tessellate"
)

// errFindings is returned when a command already reported its errors.
var errFindings = errors.New("scene has errors")

type rootOptions struct {
	configPath string
	kernel     string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("meshform: ")
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "meshform",
		Short:         "Generate procedural meshes from scene scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (.toml, .yaml)")
	root.PersistentFlags().StringVar(&opts.kernel, "kernel", "", "shape kernel: procedural or sdfx")

	root.AddCommand(newBuildCommand(opts), newCheckCommand(opts), newShapeCommand(opts))
	return root
}

// loadConfig applies the config file and then the flags over the defaults.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.kernel != "" {
		cfg.Kernel = o.kernel
	}
	return cfg, cfg.Validate()
}

func (o *rootOptions) newApp() (*App, config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	a, err := NewAppWithConfig(cfg)
	return a, cfg, err
}

func newBuildCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <scene>",
		Short: "Evaluate a scene and write its meshes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := opts.newApp()
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			meshes, res := a.Build(string(source))
			rep := newReporter(cmd.ErrOrStderr())
			rep.findings(res)
			if !res.OK() {
				return errFindings
			}

			if output == "" {
				output = cfg.Output.Path
			}
			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + "." + string(cfg.OutputFormat())
			}
			if err := export.Save(output, meshes); err != nil {
				return err
			}
			log.Printf("wrote %d meshes to %s", len(meshes), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.glb, .gltf, .json)")
	return cmd
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scene>",
		Short: "Validate a scene and print mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.newApp()
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res := a.Evaluate(string(source))
			rep := newReporter(cmd.OutOrStdout())
			rep.findings(res)
			rep.meshes(res)
			rep.summary(res)
			if !res.OK() {
				return errFindings
			}
			return nil
		},
	}
}

// shapeFlags holds the parameters of the shape command. Each shape reads
// the subset it needs.
type shapeFlags struct {
	height, radius, width, depth, maxHeight, size float64
	segments, cols, rows, xSlices, zSlices        int
	relief, output                                string
}

func (f *shapeFlags) data(shape string) (graph.ShapeData, error) {
	switch shape {
	case "cone":
		return graph.ConeData{Height: f.height, Radius: f.radius, Segments: f.segments}, nil
	case "cylinder":
		return graph.CylinderData{Height: f.height, Radius: f.radius, Segments: f.segments}, nil
	case "plane":
		return graph.PlaneData{Width: f.width, Height: f.height, Cols: f.cols, Rows: f.rows}, nil
	case "terrain":
		return graph.TerrainData{Width: f.width, Depth: f.depth, XSlices: f.xSlices, ZSlices: f.zSlices, MaxHeight: f.maxHeight, Relief: f.relief}, nil
	case "skybox":
		return graph.SkyboxData{Size: f.size}, nil
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

func newShapeCommand(opts *rootOptions) *cobra.Command {
	f := &shapeFlags{}
	cmd := &cobra.Command{
		Use:       "shape cone|cylinder|plane|terrain|skybox",
		Short:     "Build a single shape",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"cone", "cylinder", "plane", "terrain", "skybox"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := opts.newApp()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("segments") {
				f.segments = cfg.Segments
			}
			data, err := f.data(args[0])
			if err != nil {
				return err
			}

			m, err := tessellate.Build(a.Kernel(), data)
			if err != nil {
				return err
			}
			m.Name = args[0]
			meshes := []*kernel.Mesh{m}

			if f.output == "" {
				return export.WriteJSON(cmd.OutOrStdout(), meshes)
			}
			if err := export.Save(f.output, meshes); err != nil {
				return err
			}
			log.Printf("wrote %s (%d vertices, %d triangles) to %s", args[0], m.VertexCount(), m.TriangleCount(), f.output)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&f.height, "height", 1, "height (plane: extent along Z)")
	fl.Float64Var(&f.radius, "radius", 1, "radius of cone and cylinder")
	fl.IntVar(&f.segments, "segments", 0, "base ring vertices (default from config)")
	fl.Float64Var(&f.width, "width", 1, "extent along X")
	fl.Float64Var(&f.depth, "depth", 1, "terrain extent along Z")
	fl.IntVar(&f.cols, "cols", 1, "plane columns")
	fl.IntVar(&f.rows, "rows", 1, "plane rows")
	fl.IntVar(&f.xSlices, "x-slices", 1, "terrain cells along X")
	fl.IntVar(&f.zSlices, "z-slices", 1, "terrain cells along Z")
	fl.Float64Var(&f.maxHeight, "max-height", 0, "terrain height scale")
	fl.StringVar(&f.relief, "relief", kernel.DefaultRelief, "terrain relief: "+strings.Join(kernel.Reliefs(), ", "))
	fl.Float64Var(&f.size, "size", 1, "skybox half-extent")
	fl.StringVarP(&f.output, "output", "o", "", "output file; JSON on stdout when empty")
	return cmd
}
