package grid

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/observability"
)

func mustNew(t *testing.T, m [][]int, opts ...Option) *Grid {
	t.Helper()
	g, err := New(m, opts...)
	if err != nil {
		t.Fatalf("New(%v) error: %v", m, err)
	}
	return g
}

func TestNew_TwoColumns(t *testing.T) {
	g := mustNew(t, [][]int{{0, 1}, {0, 1}}, WithSize(100, 100), WithThickness(10))

	r0, _ := g.Region(0)
	if r0.Position() != (Point{}) || r0.Size() != (Size{W: 45, H: 100}) {
		t.Errorf("region 0 = %+v %+v, want {0 0} {45 100}", r0.Position(), r0.Size())
	}
	r1, _ := g.Region(1)
	if r1.Position() != (Point{X: 55}) || r1.Size() != (Size{W: 45, H: 100}) {
		t.Errorf("region 1 = %+v %+v, want {55 0} {45 100}", r1.Position(), r1.Size())
	}
	d, ok := g.Divider(-3)
	if !ok {
		t.Fatal("Divider(-3) not found")
	}
	if d.Position() != (Point{X: 45}) || d.Size() != (Size{W: 10, H: 100}) {
		t.Errorf("divider = %+v %+v, want {45 0} {10 100}", d.Position(), d.Size())
	}
	if d.Length() != 100 || d.Thickness() != 10 {
		t.Errorf("divider length/thickness = %v/%v, want 100/10", d.Length(), d.Thickness())
	}

	if err := g.Drag(DragEvent{Divider: -3, Delta: 10}); err != nil {
		t.Fatalf("Drag() error: %v", err)
	}
	if r0.Size().W != 35 || r1.Size().W != 55 || d.Position().X != 35 {
		t.Errorf("after drag: widths %v/%v divider x %v, want 35/55/35",
			r0.Size().W, r1.Size().W, d.Position().X)
	}
}

func TestNew_Defaults(t *testing.T) {
	g := mustNew(t, [][]int{{0}})
	if g.Width() != DefaultWidth || g.Height() != DefaultHeight || g.Thickness() != DefaultThickness {
		t.Errorf("defaults = %vx%v t=%v", g.Width(), g.Height(), g.Thickness())
	}
	r, _ := g.Region(0)
	if r.Size() != (Size{W: DefaultWidth, H: DefaultHeight}) {
		t.Errorf("single region size = %+v, want full surface", r.Size())
	}
	if len(g.Dividers()) != 0 {
		t.Errorf("Dividers() = %d, want 0", len(g.Dividers()))
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]int
		opts   []Option
		code   errors.Code
	}{
		{"duplicate label", [][]int{{0, 1}, {1, 0}}, nil, errors.ErrCodeInvalidMatrix},
		{"empty", [][]int{}, nil, errors.ErrCodeInvalidMatrix},
		{"negative width", [][]int{{0}}, []Option{WithSize(-1, 10)}, errors.ErrCodeInvalidInput},
		{"nan height", [][]int{{0}}, []Option{WithSize(10, math.NaN())}, errors.ErrCodeInvalidInput},
		{"negative thickness", [][]int{{0}}, []Option{WithThickness(-2)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.matrix, tt.opts...)
			if g != nil {
				t.Error("New() should not return a grid on error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestGrid_RegionsAndDividers(t *testing.T) {
	g := mustNew(t, [][]int{{9, 5}, {7, 7}})

	var labels []int
	for _, r := range g.Regions() {
		labels = append(labels, r.Label())
	}
	if !reflect.DeepEqual(labels, []int{5, 7, 9}) {
		t.Errorf("Regions() labels = %v, want [5 7 9]", labels)
	}
	if g.MaxLabel() != 9 {
		t.Errorf("MaxLabel() = %d, want 9", g.MaxLabel())
	}
	if _, ok := g.Region(0); ok {
		t.Error("Region(0) should not exist for sparse labels")
	}

	var ids []int
	for _, d := range g.Dividers() {
		ids = append(ids, d.ID())
	}
	if !reflect.DeepEqual(ids, []int{-2, -3}) {
		t.Errorf("Dividers() = %v, want [-2 -3]", ids)
	}

	h, _ := g.Divider(-2)
	if h.Orientation() != Horizontal {
		t.Errorf("-2 orientation = %s", h.Orientation())
	}
	if !reflect.DeepEqual(h.Before(), []int{5, 9}) || !reflect.DeepEqual(h.After(), []int{7}) {
		t.Errorf("-2 adjacency = %v / %v, want [5 9] / [7]", h.Before(), h.After())
	}
	if h.Length() != g.Width() {
		t.Errorf("-2 length = %v, want %v", h.Length(), g.Width())
	}
	if f := h.Followers(); !reflect.DeepEqual(f.Before, []int{-3}) {
		t.Errorf("-2 followers = %+v, want before [-3]", f)
	}
}

func TestGrid_ElementIDs(t *testing.T) {
	g := mustNew(t, [][]int{{0, 1}})
	r, _ := g.Region(1)
	if r.ElementID() != "grid_cell_1" {
		t.Errorf("region ElementID() = %q", r.ElementID())
	}
	d, _ := g.Divider(-3)
	if d.ElementID() != "splitter_-3" {
		t.Errorf("divider ElementID() = %q", d.ElementID())
	}
}

func TestDivider_RangeAndAxisDelta(t *testing.T) {
	g := mustNew(t, [][]int{{0, 0}, {1, 2}})

	h, _ := g.Divider(-2)
	if rng := h.Range(); !math.IsInf(rng.Min, -1) || !math.IsInf(rng.Max, 1) {
		t.Errorf("default Range() = %+v, want unbounded", rng)
	}
	h.SetRange(Range{Min: 10, Max: 20})
	if h.Range() != (Range{Min: 10, Max: 20}) {
		t.Errorf("Range() after SetRange = %+v", h.Range())
	}
	if got := h.AxisDelta(Point{X: 3, Y: -4}); got != -4 {
		t.Errorf("horizontal AxisDelta() = %v, want -4", got)
	}
	v, _ := g.Divider(-3)
	if got := v.AxisDelta(Point{X: 3, Y: -4}); got != 3 {
		t.Errorf("vertical AxisDelta() = %v, want 3", got)
	}
}

func TestGrid_DragErrors(t *testing.T) {
	g := mustNew(t, [][]int{{0, 1}}, WithSize(100, 100), WithThickness(10))
	before := g.Sizes()

	if err := g.Drag(DragEvent{Divider: -99, Delta: 5}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown divider error = %v, want NOT_FOUND", err)
	}
	if err := g.Drag(DragEvent{Divider: -3, Delta: math.Inf(1)}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("infinite delta error = %v, want INVALID_INPUT", err)
	}
	if err := g.Drag(DragEvent{Divider: -3}); err != nil {
		t.Errorf("zero delta error = %v, want nil", err)
	}
	if !reflect.DeepEqual(g.Sizes(), before) {
		t.Error("failed drags should leave sizes unchanged")
	}

	err := g.Apply(DragEvent{Divider: -3, Delta: 5}, DragEvent{Divider: -7, Delta: 5})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Apply() error = %v, want NOT_FOUND", err)
	}
	if r, _ := g.Region(0); r.Size().W != 40 {
		t.Errorf("Apply() should keep drags before the failure, width %v", r.Size().W)
	}
}

func TestGrid_Deterministic(t *testing.T) {
	m := [][]int{{0, 0, 1}, {2, 3, 1}, {2, 4, 4}}
	drags := []DragEvent{{-3, 12}, {-4, -8}, {-5, 20}, {-2, 5.5}}

	a := mustNew(t, m)
	b := mustNew(t, m)
	if err := a.Apply(drags...); err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(drags...); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Sizes(), b.Sizes()) || !reflect.DeepEqual(a.Positions(), b.Positions()) {
		t.Error("identical inputs produced different geometry")
	}
	checkSums(t, a.Sizes(), a.Width(), a.Height())
}

func TestGrid_RegionCount(t *testing.T) {
	matrices := [][][]int{
		{{0}},
		{{0, 1}, {0, 1}},
		{{0, 0, 1}, {2, 3, 1}, {2, 4, 4}},
		{{3, 3, 8}, {3, 3, 8}},
	}
	for _, m := range matrices {
		distinct := make(map[int]bool)
		for _, row := range m {
			for _, v := range row {
				distinct[v] = true
			}
		}
		if got := len(mustNew(t, m).Regions()); got != len(distinct) {
			t.Errorf("len(Regions()) = %d, want %d for %v", got, len(distinct), m)
		}
	}
}

type recordingPresenter struct {
	calls []Size
	last  Point
}

func (p *recordingPresenter) SetGeometry(pos Point, size Size) {
	p.last = pos
	p.calls = append(p.calls, size)
}

func TestGrid_Presenters(t *testing.T) {
	g := mustNew(t, [][]int{{0, 1}}, WithSize(100, 100), WithThickness(10))

	region := &recordingPresenter{}
	if err := g.Attach(0, region); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	var dividerX float64
	if err := g.AttachDivider(-3, PresenterFunc(func(pos Point, _ Size) { dividerX = pos.X })); err != nil {
		t.Fatalf("AttachDivider() error: %v", err)
	}
	if len(region.calls) != 1 || region.calls[0].W != 45 || dividerX != 45 {
		t.Fatalf("attach should deliver current geometry, got %+v, divider x %v", region.calls, dividerX)
	}

	if err := g.Drag(DragEvent{Divider: -3, Delta: 5}); err != nil {
		t.Fatal(err)
	}
	if len(region.calls) != 2 || region.calls[1].W != 40 || dividerX != 40 {
		t.Errorf("presenters after drag = %+v, divider x %v", region.calls, dividerX)
	}

	if err := g.Attach(42, region); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Attach(42) error = %v, want NOT_FOUND", err)
	}
	if err := g.AttachDivider(-42, region); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("AttachDivider(-42) error = %v, want NOT_FOUND", err)
	}
}

type countingGridHooks struct {
	observability.NoopGridHooks
	builds, drags int
	lastErr       error
}

func (h *countingGridHooks) OnBuild(_, _, _, _ int, _ time.Duration, err error) {
	h.builds++
	h.lastErr = err
}

func (h *countingGridHooks) OnDrag(_ int, _ float64, _ int, _ time.Duration, err error) {
	h.drags++
	h.lastErr = err
}

func TestGrid_Hooks(t *testing.T) {
	hooks := &countingGridHooks{}
	observability.SetGridHooks(hooks)
	defer observability.Reset()

	g := mustNew(t, [][]int{{0, 1}})
	_ = g.Drag(DragEvent{Divider: -3, Delta: 1})
	_ = g.Drag(DragEvent{Divider: -9, Delta: 1})
	if hooks.builds != 1 || hooks.drags != 2 {
		t.Errorf("hooks saw %d builds and %d drags, want 1 and 2", hooks.builds, hooks.drags)
	}
	if hooks.lastErr == nil {
		t.Error("failed drag should be reported to hooks")
	}

	_, _ = New([][]int{{0, 1}, {1, 0}})
	if hooks.builds != 2 || hooks.lastErr == nil {
		t.Error("failed build should be reported to hooks")
	}
}
