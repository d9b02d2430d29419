// Package pitch models the spatial side of the ledger: converting pointer
// positions on a rendered pitch into normalized coordinates, projecting them
// back onto the drawing surface, and the marker filtering used by shot maps.
package pitch

import (
	"fmt"
	"math"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
)

// Surface dimensions of the reference pitch drawing. Normalized coordinates
// are percentages of this surface, so any renderer that keeps the 145:90
// aspect ratio can project markers without distortion.
const (
	SurfaceWidth  = 145.0
	SurfaceHeight = 90.0
)

// Point is a position on the pitch in whole percentages of its length (X)
// and width (Y), both in [0, 100].
type Point struct {
	X int
	Y int
}

func (p Point) Validate() error {
	if p.X < 0 || p.X > 100 {
		return fmt.Errorf("pitch x must be within [0, 100], got %d", p.X)
	}
	if p.Y < 0 || p.Y > 100 {
		return fmt.Errorf("pitch y must be within [0, 100], got %d", p.Y)
	}
	return nil
}

// Bounds is the on-screen rectangle a pitch drawing occupies, in the same
// units as the pointer position handed to Capture.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Capture converts a pointer position inside bounds into a normalized Point.
// The fraction of the rectangle is scaled to [0, 100], rounded to the nearest
// whole percent and clamped, so taps on the very edge still land in range.
func Capture(pointerX, pointerY float64, b Bounds) (Point, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return Point{}, fmt.Errorf("pitch bounds must have positive size, got %gx%g", b.Width, b.Height)
	}
	x := math.Round((pointerX - b.Left) / b.Width * 100)
	y := math.Round((pointerY - b.Top) / b.Height * 100)
	return Point{X: clampPercent(x), Y: clampPercent(y)}, nil
}

// Project maps a normalized point onto the reference drawing surface.
func Project(p Point) (x, y float64) {
	return float64(p.X) / 100 * SurfaceWidth, float64(p.Y) / 100 * SurfaceHeight
}

func clampPercent(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// Selection holds the single pending point picked on the pitch before an
// action is recorded. Picking again replaces the previous point.
type Selection struct {
	point  Point
	picked bool
}

func (s *Selection) Select(p Point) {
	s.point = p
	s.picked = true
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// Current returns the pending point, if any.
func (s *Selection) Current() (Point, bool) {
	return s.point, s.picked
}

// MarkerStyle is the visual treatment of one action type on a shot map.
type MarkerStyle struct {
	Fill  string
	Label string
}

var markerStyles = map[action.Type]MarkerStyle{
	action.TypeGoal:          {Fill: "#22c55e", Label: "Goal"},
	action.TypePoint:         {Fill: "#3b82f6", Label: "Point"},
	action.TypeMissedShot:    {Fill: "#ef4444", Label: "Missed shot"},
	action.TypeFoulCommitted: {Fill: "#eab308", Label: "Foul committed"},
	action.TypeTurnover:      {Fill: "#f97316", Label: "Turnover"},
	action.TypeRecovery:      {Fill: "#06b6d4", Label: "Recovery"},
	action.TypeBallWon:       {Fill: "#8b5cf6", Label: "Ball won"},
}

// StyleFor returns the marker style for an action type. Types without a
// dedicated style share a neutral grey marker.
func StyleFor(t action.Type) MarkerStyle {
	if s, ok := markerStyles[t]; ok {
		return s
	}
	return MarkerStyle{Fill: "#9ca3af", Label: t.Label()}
}

// MappableTypes lists the action types that get a dedicated marker on the
// shot map, in display order.
var MappableTypes = []action.Type{
	action.TypeGoal,
	action.TypePoint,
	action.TypeMissedShot,
	action.TypeFoulCommitted,
	action.TypeTurnover,
	action.TypeRecovery,
	action.TypeBallWon,
}

// Filter controls which action types are visible on the shot map. A freshly
// constructed filter shows only shooting actions.
type Filter struct {
	visible map[action.Type]bool
}

func NewFilter() *Filter {
	return &Filter{visible: map[action.Type]bool{
		action.TypeGoal:       true,
		action.TypePoint:      true,
		action.TypeMissedShot: true,
	}}
}

// FilterOf builds a filter showing exactly the given types.
func FilterOf(types ...action.Type) *Filter {
	f := &Filter{visible: make(map[action.Type]bool, len(types))}
	for _, t := range types {
		f.visible[t] = true
	}
	return f
}

func (f *Filter) Toggle(t action.Type) {
	f.visible[t] = !f.visible[t]
}

func (f *Filter) Visible(t action.Type) bool {
	return f.visible[t]
}

// Apply keeps only positioned actions whose type is currently visible.
func (f *Filter) Apply(ledger []action.Action) []action.Action {
	out := make([]action.Action, 0, len(ledger))
	for _, a := range ledger {
		if a.HasPosition() && f.visible[a.Type] {
			out = append(out, a)
		}
	}
	return out
}
