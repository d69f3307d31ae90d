// Package config loads meshform settings from TOML or YAML files.
//
// Values start from Default; a file only needs to name what it changes.
// CLI flags are applied on top by the caller.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/xcanals/meshform/pkg/export"
)

// Kernel names accepted in Config.Kernel.
const (
	KernelProcedural = "procedural"
	KernelSDFX       = "sdfx"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration written as "5s" or "250ms" in config files.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// OutputConfig selects where and how meshes are written.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Path   string `toml:"path" yaml:"path"`
}

// Config holds every tunable of the pipeline.
type Config struct {
	// Kernel is "procedural" or "sdfx".
	Kernel string `toml:"kernel" yaml:"kernel"`

	// SDFCells is the marching-cubes resolution of the sdfx kernel.
	SDFCells int `toml:"sdf_cells" yaml:"sdf_cells"`

	// Segments is the ring vertex count used when a scene omits :segments.
	Segments int `toml:"segments" yaml:"segments"`

	EvalTimeout Duration     `toml:"eval_timeout" yaml:"eval_timeout"`
	Output      OutputConfig `toml:"output" yaml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Kernel:      KernelProcedural,
		SDFCells:    200,
		Segments:    32,
		EvalTimeout: Duration{5 * time.Second},
		Output:      OutputConfig{Format: string(export.FormatGLB)},
	}
}

// Decoder is satisfied by the TOML and YAML stream decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

func tomlDecoder(r io.Reader) Decoder {
	return toml.NewDecoder(r).DisallowUnknownFields()
}

func yamlDecoder(r io.Reader) Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// DecoderFor picks a decoder from the file extension.
func DecoderFor(path string) (DecoderFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlDecoder, nil
	case ".yaml", ".yml":
		return yamlDecoder, nil
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	f, err := DecoderFor(path)
	if err != nil {
		return Config{}, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	return Read(bufio.NewReader(fp), f)
}

// Read decodes a config from r over Default and validates the result.
func Read(r io.Reader, f DecoderFunc) (Config, error) {
	c := Default()
	if err := f(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first setting outside its accepted range.
func (c Config) Validate() error {
	switch c.Kernel {
	case KernelProcedural, KernelSDFX:
	default:
		return fmt.Errorf("%w: kernel %q: want %q or %q", ErrInvalidConfig, c.Kernel, KernelProcedural, KernelSDFX)
	}
	if c.SDFCells <= 0 {
		return fmt.Errorf("%w: sdf_cells %d must be positive", ErrInvalidConfig, c.SDFCells)
	}
	if c.Segments < 3 {
		return fmt.Errorf("%w: segments %d must be at least 3", ErrInvalidConfig, c.Segments)
	}
	if c.EvalTimeout.Duration <= 0 {
		return fmt.Errorf("%w: eval_timeout %s must be positive", ErrInvalidConfig, c.EvalTimeout)
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	return nil
}

// OutputFormat resolves the effective format: the output path's
// extension wins over Output.Format when it names a known format.
func (c Config) OutputFormat() export.Format {
	if c.Output.Path != "" {
		if f, err := export.FormatFromPath(c.Output.Path); err == nil {
			return f
		}
	}
	f, _ := export.ParseFormat(c.Output.Format)
	return f
}
