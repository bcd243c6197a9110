package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/splitgrid/pkg/cache"
	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"toml", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format should fail with INVALID_FORMAT, got %v", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Matrix: [][]int{{0, 1}}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %gx%g, want %gx%g", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Thickness != DefaultThickness {
		t.Errorf("Thickness = %g, want %g", opts.Thickness, DefaultThickness)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Width = 123
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 123 {
		t.Error("second ValidateAndSetDefaults should be a no-op")
	}
}

func TestOptionsValidateForBuild(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing matrix", Options{}, errors.ErrCodeInvalidInput},
		{"negative width", Options{Matrix: [][]int{{0}}, Width: -1}, errors.ErrCodeInvalidInput},
		{"infinite height", Options{Matrix: [][]int{{0}}, Height: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"negative thickness", Options{Matrix: [][]int{{0}}, Thickness: -7}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForBuild()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForBuild() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsFromScenario(t *testing.T) {
	sc := &sgio.Scenario{
		Width:  400,
		Height: 300,
		Matrix: [][]int{{0, 1}},
		Drags:  []grid.DragEvent{{Divider: -3, Delta: 5}},
	}
	opts := OptionsFromScenario(sc)
	if opts.Width != 400 || opts.Height != 300 || len(opts.Drags) != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	// Drags are copied
	opts.Drags[0].Delta = 99
	if sc.Drags[0].Delta != 5 {
		t.Error("OptionsFromScenario should copy drags")
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := Options{
		Matrix:  [][]int{{0, 1}},
		Drags:   []grid.DragEvent{{Divider: -3, Delta: 10}},
		Formats: []string{FormatJSON, FormatTOML, FormatDOT},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.Regions != 2 || result.Stats.Dividers != 1 || result.Stats.Drags != 1 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
	for _, f := range opts.Formats {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}

	// (800 - 7) / 2 = 396.5, less the drag
	if got := result.Layout.Regions[0].Width; math.Abs(got-386.5) > 1e-9 {
		t.Errorf("region 0 width = %g, want 386.5", got)
	}

	var layout sgio.Layout
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &layout); err != nil {
		t.Fatalf("json artifact does not decode: %v", err)
	}
	if len(layout.Dividers) != 1 || layout.Dividers[0].ID != -3 {
		t.Errorf("unexpected dividers in json artifact: %+v", layout.Dividers)
	}

	decoded, err := sgio.ReadLayout(bytes.NewReader(result.Artifacts[FormatTOML]), sgio.FormatTOML)
	if err != nil {
		t.Fatalf("toml artifact does not decode: %v", err)
	}
	if len(decoded.Regions) != 2 {
		t.Errorf("toml artifact has %d regions, want 2", len(decoded.Regions))
	}

	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact should start with digraph")
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"invalid matrix", Options{Matrix: [][]int{{0, 1}, {1, 0}}}, errors.ErrCodeInvalidMatrix},
		{"unknown divider", Options{Matrix: [][]int{{0, 1}}, Drags: []grid.DragEvent{{Divider: -9, Delta: 1}}}, errors.ErrCodeNotFound},
		{"bad format", Options{Matrix: [][]int{{0}}, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Matrix: [][]int{{0}}})
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("Execute() with cancelled context = %v, want context canceled", err)
	}
}

func TestRenderCache(t *testing.T) {
	mem := cache.NewMemoryCache()
	runner := NewRunner(mem, nil, nil)
	opts := Options{
		Matrix:  [][]int{{0, 1}, {2, 2}},
		Formats: []string{FormatJSON, FormatDOT},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheHits != 0 {
		t.Errorf("first run CacheHits = %d, want 0", first.Stats.CacheHits)
	}
	if mem.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", mem.Len())
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Stats.CacheHits != 2 {
		t.Errorf("second run CacheHits = %d, want 2", second.Stats.CacheHits)
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// A drag changes the layout and therefore the key
	if err := second.Grid.Drag(grid.DragEvent{Divider: -3, Delta: 4}); err != nil {
		t.Fatal(err)
	}
	_, hits, err := runner.RenderWithCacheInfo(context.Background(), second.Grid, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hits != 0 {
		t.Errorf("hits after drag = %d, want 0", hits)
	}
}

func TestReplayStopsAtFirstError(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	g, err := runner.Build(context.Background(), Options{Matrix: [][]int{{0, 1}}})
	if err != nil {
		t.Fatal(err)
	}

	drags := []grid.DragEvent{
		{Divider: -3, Delta: 10},
		{Divider: -5, Delta: 10},
		{Divider: -3, Delta: 10},
	}
	err = runner.Replay(context.Background(), g, drags)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Replay() = %v, want NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "drag 1") {
		t.Errorf("error should name the failing drag: %v", err)
	}

	r, _ := g.Region(0)
	if math.Abs(r.Size().W-386.5) > 1e-9 {
		t.Errorf("region 0 width = %g, want only the first drag applied", r.Size().W)
	}
}
