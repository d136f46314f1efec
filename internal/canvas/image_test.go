package canvas

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbeda/geom"
)

func newTestSnapshot(t *testing.T) (*Snapshot, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dial.webp")
	s, err := NewSnapshot(path, Transform{Width: 100, Height: 100, Scale: 20}, DefaultStyles())
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return s, path
}

func pixel(s *Snapshot, x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

func TestSnapshotBackgroundFill(t *testing.T) {
	s, _ := newTestSnapshot(t)
	want := color.RGBA{0x00, 0x00, 0x00, 0xFF}
	for _, p := range [][2]int{{0, 0}, {50, 50}, {99, 99}} {
		if got := pixel(s, p[0], p[1]); got != want {
			t.Errorf("pixel (%d,%d) = %v, want background %v", p[0], p[1], got, want)
		}
	}
}

func TestSnapshotLineDrawsGroupColor(t *testing.T) {
	s, _ := newTestSnapshot(t)
	styles := DefaultStyles()
	s.GroupStart(FamilyStandard, styles.Families[FamilyStandard])
	s.Line(geom.Coord{X: -1, Y: 0}, geom.Coord{X: 1, Y: 0})
	s.GroupEnd()

	// Logical origin maps to device (51,51); the segment spans x 31..71.
	want := color.RGBA{0x00, 0xAA, 0x00, 0xFF}
	for _, x := range []int{31, 51, 71} {
		if got := pixel(s, x, 51); got != want {
			t.Errorf("pixel (%d,51) = %v, want %v", x, got, want)
		}
	}
	if got := pixel(s, 51, 40); got == want {
		t.Error("pixel off the segment should stay background")
	}
}

func TestSnapshotPolylineNeedsOpenPen(t *testing.T) {
	s, _ := newTestSnapshot(t)
	styles := DefaultStyles()
	s.GroupStart(FamilyConic, styles.Families[FamilyConic])
	s.LineTo(geom.Coord{X: -1, Y: 0})
	s.LineEnd()
	// Pen lifted: the next LineTo must move, not draw.
	s.LineTo(geom.Coord{X: 1, Y: 0})
	s.LineEnd()
	s.GroupEnd()

	bg := color.RGBA{0x00, 0x00, 0x00, 0xFF}
	if got := pixel(s, 51, 51); got != bg {
		t.Errorf("pixel (51,51) = %v, want untouched background", got)
	}
}

func TestSnapshotHighlightUsesBoldColor(t *testing.T) {
	s, _ := newTestSnapshot(t)
	styles := DefaultStyles()
	s.GroupStart(FamilyStandard, styles.Families[FamilyStandard])
	s.Highlight(true)
	s.Line(geom.Coord{X: 0, Y: -1}, geom.Coord{X: 0, Y: 1})
	s.GroupEnd()

	want := color.RGBA{0x55, 0xFF, 0x55, 0xFF}
	if got := pixel(s, 51, 51); got != want {
		t.Errorf("highlighted pixel = %v, want %v", got, want)
	}
}

func TestSnapshotMarkerFillsDisc(t *testing.T) {
	s, _ := newTestSnapshot(t)
	styles := DefaultStyles()
	s.GroupStart(FamilyShape, styles.Families[FamilyShape])
	s.Marker(geom.Coord{}, 3)
	s.GroupEnd()

	want := color.RGBA{0xAA, 0x55, 0x00, 0xFF}
	if got := pixel(s, 51, 51); got != want {
		t.Errorf("marker center = %v, want %v", got, want)
	}
	if got := pixel(s, 53, 51); got != want {
		t.Errorf("marker interior = %v, want %v", got, want)
	}
	bg := color.RGBA{0x00, 0x00, 0x00, 0xFF}
	if got := pixel(s, 58, 51); got != bg {
		t.Errorf("outside marker = %v, want background", got)
	}
}

func TestSnapshotCloseWritesFile(t *testing.T) {
	s, path := newTestSnapshot(t)
	s.Line(geom.Coord{X: -1, Y: -1}, geom.Coord{X: 1, Y: 1})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
	// Second close must not rewrite the file.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
