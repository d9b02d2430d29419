package pitch

import (
	"testing"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
)

func TestCapture(t *testing.T) {
	b := Bounds{Left: 10, Top: 20, Width: 580, Height: 360}

	p, err := Capture(300, 200, b)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if p.X != 50 || p.Y != 50 {
		t.Fatalf("expected midpoint (50, 50), got (%d, %d)", p.X, p.Y)
	}

	// Taps slightly outside the rectangle clamp instead of failing.
	p, err = Capture(5, 500, b)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if p.X != 0 || p.Y != 100 {
		t.Fatalf("expected clamped (0, 100), got (%d, %d)", p.X, p.Y)
	}

	if _, err := Capture(0, 0, Bounds{Width: 0, Height: 100}); err == nil {
		t.Fatal("expected error for degenerate bounds")
	}
}

func TestCaptureProjectRoundTrip(t *testing.T) {
	b := Bounds{Width: 1450, Height: 900}

	for _, want := range []Point{{0, 0}, {25, 75}, {100, 100}, {33, 67}} {
		px := float64(want.X) / 100 * b.Width
		py := float64(want.Y) / 100 * b.Height
		got, err := Capture(px, py, b)
		if err != nil {
			t.Fatalf("Capture(%v): %v", want, err)
		}
		if got != want {
			t.Fatalf("round trip changed point: want %v, got %v", want, got)
		}

		sx, sy := Project(got)
		if sx < 0 || sx > SurfaceWidth || sy < 0 || sy > SurfaceHeight {
			t.Fatalf("projection (%g, %g) escapes the surface", sx, sy)
		}
	}
}

func TestSelectionReplaces(t *testing.T) {
	var s Selection
	if _, ok := s.Current(); ok {
		t.Fatal("fresh selection should be empty")
	}

	s.Select(Point{X: 10, Y: 20})
	s.Select(Point{X: 70, Y: 80})

	got, ok := s.Current()
	if !ok || got != (Point{X: 70, Y: 80}) {
		t.Fatalf("expected latest point to win, got %v (ok=%v)", got, ok)
	}

	s.Clear()
	if _, ok := s.Current(); ok {
		t.Fatal("cleared selection should be empty")
	}
}

func TestFilterDefaultsToShooting(t *testing.T) {
	f := NewFilter()

	for _, typ := range []action.Type{action.TypeGoal, action.TypePoint, action.TypeMissedShot} {
		if !f.Visible(typ) {
			t.Fatalf("%s should be visible by default", typ)
		}
	}
	if f.Visible(action.TypeTurnover) {
		t.Fatal("turnover should be hidden by default")
	}

	f.Toggle(action.TypeTurnover)
	if !f.Visible(action.TypeTurnover) {
		t.Fatal("toggle should reveal turnover")
	}
	f.Toggle(action.TypeGoal)
	if f.Visible(action.TypeGoal) {
		t.Fatal("toggle should hide goals")
	}
}

func TestFilterApplySkipsUnpositioned(t *testing.T) {
	x, y := 40, 60
	ledger := []action.Action{
		{ID: "a1", Type: action.TypeGoal, X: &x, Y: &y},
		{ID: "a2", Type: action.TypeGoal}, // no position
		{ID: "a3", Type: action.TypeTurnover, X: &x, Y: &y},
	}

	got := NewFilter().Apply(ledger)
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected only the positioned goal, got %v", got)
	}
}

func TestStyleFor(t *testing.T) {
	if s := StyleFor(action.TypeGoal); s.Fill != "#22c55e" {
		t.Fatalf("unexpected goal fill %q", s.Fill)
	}
	if s := StyleFor(action.TypeKickout); s.Fill != "#9ca3af" {
		t.Fatalf("expected fallback fill for kickout, got %q", s.Fill)
	}
}
