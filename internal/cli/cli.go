package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/splitgrid/pkg/buildinfo"
	"github.com/matzehuels/splitgrid/pkg/cache"
	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
	"github.com/matzehuels/splitgrid/pkg/observability"
	"github.com/matzehuels/splitgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "splitgrid"

	// layoutSuffix is inserted before the extension of derived output paths
	// so that scenario.json never overwrites itself.
	layoutSuffix = ".layout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Splitgrid lays out resizable split-pane grids",
		Long:         `Splitgrid turns a matrix of region labels into a grid of regions separated by draggable dividers, replays drags and exports the resulting geometry.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	installHooks(c.Logger)

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes grid and pipeline events to the debug log.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetGridHooks(h)
	observability.SetPipelineHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. One-shot runs render each
// artifact once, so caching is disabled.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
}

// =============================================================================
// Scenario Loading
// =============================================================================

// overrides holds command-line flags that take precedence over a scenario.
type overrides struct {
	width     float64
	height    float64
	thickness float64
	drags     []string
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.width, "width", 0, "grid width in pixels (default: scenario or 800)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "grid height in pixels (default: scenario or 600)")
	cmd.Flags().Float64Var(&o.thickness, "thickness", 0, "divider thickness in pixels (default: scenario or 7)")
	cmd.Flags().StringArrayVar(&o.drags, "drag", nil, "extra drag as id:delta, applied after the scenario's drags (repeatable)")
}

// loadOptions reads a scenario file and applies flag overrides.
func loadOptions(path string, o overrides, logger *log.Logger) (pipeline.Options, error) {
	sc, err := sgio.ImportScenario(path)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load scenario %s: %w", path, err)
	}
	logger.Debug("loaded scenario", "path", path, "rows", len(sc.Matrix), "drags", len(sc.Drags))

	opts := pipeline.OptionsFromScenario(sc)
	opts.Logger = logger
	if o.width != 0 {
		opts.Width = o.width
	}
	if o.height != 0 {
		opts.Height = o.height
	}
	if o.thickness != 0 {
		opts.Thickness = o.thickness
	}
	for _, s := range o.drags {
		ev, err := parseDrag(s)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Drags = append(opts.Drags, ev)
	}
	return opts, nil
}

// parseDrag parses a --drag value of the form id:delta, e.g. "-3:10".
func parseDrag(s string) (grid.DragEvent, error) {
	idStr, deltaStr, ok := strings.Cut(s, ":")
	if !ok {
		return grid.DragEvent{}, errors.New(errors.ErrCodeInvalidInput, "invalid drag %q (want id:delta)", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		return grid.DragEvent{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid divider id in drag %q", s)
	}
	delta, err := strconv.ParseFloat(strings.TrimSpace(deltaStr), 64)
	if err != nil {
		return grid.DragEvent{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid delta in drag %q", s)
	}
	return grid.DragEvent{Divider: id, Delta: delta}, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input and appends
// layoutSuffix. If output has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks the file for one format. A single format written with
// an explicit -o goes exactly where the user asked.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
