package grid

import (
	"github.com/matzehuels/splitgrid/pkg/errors"
)

// PointerSurface is the event source a drag session listens on. Each
// registration returns the function that undoes it.
type PointerSurface interface {
	OnPointerMove(fn func(Point)) (unsubscribe func())
	OnPointerUp(fn func(Point)) (unsubscribe func())
	SuppressSelection() (restore func())
}

// DragSession tracks one pointer-driven drag of a divider from press to
// release.
type DragSession struct {
	grid     *Grid
	divider  *Divider
	last     Point
	undo     []func()
	released bool
	err      error
}

// BeginDrag starts dragging divider id from origin. The session registers a
// pointer-move listener, a pointer-up listener and a selection suppressor on
// surface; Release removes all three. Only one session may be active per
// grid: a second call fails with DRAG_ACTIVE until the first is released.
func (g *Grid) BeginDrag(id int, surface PointerSurface, origin Point) (*DragSession, error) {
	if g.active != nil {
		return nil, errors.New(errors.ErrCodeDragActive, "divider %d is already being dragged", g.active.divider.ID())
	}
	d, ok := g.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "divider %d not found", id)
	}

	s := &DragSession{grid: g, divider: d, last: origin}
	g.active = s
	s.undo = append(s.undo,
		surface.SuppressSelection(),
		surface.OnPointerMove(func(p Point) { _ = s.Move(p) }),
		surface.OnPointerUp(func(p Point) {
			_ = s.Move(p)
			s.Release()
		}),
	)
	g.logger.Debug("drag started", "divider", id, "x", origin.X, "y", origin.Y)
	return s, nil
}

// Divider returns the divider being dragged.
func (s *DragSession) Divider() *Divider { return s.divider }

// Active reports whether the session has not been released.
func (s *DragSession) Active() bool { return !s.released }

// Err returns the drag error that ended the session, if any.
func (s *DragSession) Err() error { return s.err }

// Move drags the divider by the pointer displacement since the previous
// point, projected onto the divider's axis. Moving the pointer toward the
// origin yields a positive delta. A failed drag releases the session.
// Moves after release are ignored.
func (s *DragSession) Move(p Point) error {
	if s.released {
		return nil
	}
	delta := s.divider.AxisDelta(Point{X: s.last.X - p.X, Y: s.last.Y - p.Y})
	s.last = p
	if delta == 0 {
		return nil
	}
	if err := s.grid.Drag(DragEvent{Divider: s.divider.ID(), Delta: delta}); err != nil {
		s.err = err
		s.Release()
		return err
	}
	return nil
}

// Release ends the session and unregisters every listener it installed.
// It is safe to call more than once; only the first call has an effect.
func (s *DragSession) Release() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.undo) - 1; i >= 0; i-- {
		if s.undo[i] != nil {
			s.undo[i]()
		}
	}
	s.undo = nil
	if s.grid.active == s {
		s.grid.active = nil
	}
	s.grid.logger.Debug("drag released", "divider", s.divider.ID())
}
