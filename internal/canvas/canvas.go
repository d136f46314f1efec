// Package canvas defines the drawing-primitive contract the dial
// geometry engine emits to, the logical-to-device coordinate
// transform shared by every back end, and the per-family line styles.
package canvas

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jbeda/geom"
)

// Family identifies one of the six line categories a dial drawing is
// built from. The order is the selection index used on the command
// line.
type Family int

const (
	FamilyInfo Family = iota // info text block
	FamilyStandard
	FamilyExtreme
	FamilyConic
	FamilyEquation
	FamilyShape
	NumFamilies
)

var familyNames = [NumFamilies]string{"txt", "std", "ext", "hyp", "teq", "sha"}

// Name returns the short tag used for CLI selection and SVG classes.
func (f Family) Name() string {
	if f < 0 || f >= NumFamilies {
		return "???"
	}
	return familyNames[f]
}

// ParseFamily resolves a family from its short tag or decimal index.
func ParseFamily(s string) (Family, error) {
	for f, name := range familyNames {
		if s == name {
			return Family(f), nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= int(NumFamilies) {
			return 0, fmt.Errorf("line family index %d out of range 0..%d", i, NumFamilies-1)
		}
		return Family(i), nil
	}
	return 0, fmt.Errorf("unknown line family %q", s)
}

// Color is an RGBA stroke or fill color.
type Color struct {
	R, G, B, A uint8
}

// Hex returns the #rrggbb form used in SVG attributes.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// LineStyle carries the drawing attributes of one line family.
type LineStyle struct {
	On    bool
	Color Color // normal stroke
	Bold  Color // highlighted stroke
	Width int   // stroke width in device units
}

// StyleSet is the full drawing scheme: canvas background, default
// foreground for the frame decorations, and one style per family.
type StyleSet struct {
	Background Color
	Foreground Color
	Families   [NumFamilies]LineStyle
}

// DefaultStyles returns the CGA-palette scheme.
func DefaultStyles() StyleSet {
	return StyleSet{
		Background: Color{0x00, 0x00, 0x00, 0xFF},
		Foreground: Color{0xFF, 0xFF, 0xFF, 0xFF},
		Families: [NumFamilies]LineStyle{
			FamilyInfo:     {On: true, Color: Color{0xAA, 0xAA, 0xAA, 0xFF}, Bold: Color{0xFF, 0xFF, 0xFF, 0xFF}, Width: 1},
			FamilyStandard: {On: true, Color: Color{0x00, 0xAA, 0x00, 0xFF}, Bold: Color{0x55, 0xFF, 0x55, 0xFF}, Width: 1},
			FamilyExtreme:  {On: true, Color: Color{0x00, 0x00, 0xAA, 0xFF}, Bold: Color{0x55, 0x55, 0xFF, 0xFF}, Width: 1},
			FamilyConic:    {On: true, Color: Color{0x00, 0x00, 0xAA, 0xFF}, Bold: Color{0x55, 0x55, 0xFF, 0xFF}, Width: 1},
			FamilyEquation: {On: true, Color: Color{0xAA, 0x00, 0x00, 0xFF}, Bold: Color{0xFF, 0x55, 0x55, 0xFF}, Width: 3},
			FamilyShape:    {On: false, Color: Color{0xAA, 0x55, 0x00, 0xFF}, Bold: Color{0xFF, 0xFF, 0x55, 0xFF}, Width: 1},
		},
	}
}

// Transform maps the dial's logical unit plane onto device
// coordinates: origin centered on the canvas, shifted by the panel
// offsets, one logical unit scaled to Scale device units, y axis
// flipped to the usual screen-down convention.
type Transform struct {
	Width   int     // device width
	Height  int     // device height
	Scale   float64 // device units per logical unit
	OffsetX float64 // logical origin shift
	OffsetY float64
}

// Apply converts a logical point to device coordinates.
func (t Transform) Apply(p geom.Coord) geom.Coord {
	return geom.Coord{
		X: float64((t.Width+1)/2+1) + t.Scale*(p.X+t.OffsetX),
		Y: float64((t.Height+1)/2+1) - t.Scale*(p.Y+t.OffsetY),
	}
}

// ClipLimit is the logical distance beyond which shadow points are
// discarded as hopelessly outside the visible canvas.
func (t Transform) ClipLimit() float64 {
	return float64(t.Width) * 10 / t.Scale
}

// Canvas is the drawing-primitive contract between the geometry
// engine and a concrete back end. All point arguments are in the
// dial's logical plane; radii, stroke widths and text positions are
// in device units. A back end owns the logical-to-device mapping and
// the pen state for polylines: LineTo after a LineEnd starts a new
// stroke.
type Canvas interface {
	// GroupStart opens a logical group of same-family lines drawn
	// with the given style; GroupEnd closes it.
	GroupStart(f Family, style LineStyle)
	GroupEnd()

	// Highlight switches between the group's normal and bold color.
	Highlight(on bool)

	// Line draws one straight segment.
	Line(p1, p2 geom.Coord)
	// LineTo extends the open polyline, starting a new one on the
	// first call after a pen lift. LineEnd lifts the pen.
	LineTo(p geom.Coord)
	LineEnd()

	// Rect draws an outlined rectangle given its bottom-left corner
	// and positive extents in logical units.
	Rect(bottomLeft geom.Coord, w, h float64)
	// Circle draws an outlined circle of radius r device units.
	Circle(center geom.Coord, r float64)
	// Marker draws a small filled disc of radius r device units.
	Marker(p geom.Coord, r float64)

	// TextBox renders stacked text lines at a device position.
	TextBox(x, y int, lines []string)

	// Redraw flushes buffered drawing to the output.
	Redraw()
	// Wait blocks for interactive dismissal and reports whether the
	// user asked to quit. Non-interactive back ends return false.
	Wait() bool
	// Close releases the output resource. Safe on every exit path.
	Close() error
}

// round1 keeps one decimal of a device coordinate, enough for
// sub-pixel placement without bloating the output document.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
