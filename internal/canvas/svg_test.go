package canvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbeda/geom"
)

func testTransform() Transform {
	return Transform{Width: 1000, Height: 1000, Scale: 200}
}

func renderDocument(t *testing.T, draw func(d *Document)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dial.svg")
	d, err := NewDocument(path, testTransform(), DefaultStyles())
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	draw(d)
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

func TestDocumentPreambleAndClosing(t *testing.T) {
	out := renderDocument(t, func(d *Document) {})
	if !strings.HasPrefix(out, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"1000\" height=\"1000\"") {
		t.Errorf("missing svg preamble:\n%s", out)
	}
	if !strings.Contains(out, "<rect x=\"0\" y=\"0\" width=\"1000\" height=\"1000\" fill=\"#000000\"") {
		t.Errorf("missing background rect:\n%s", out)
	}
	if !strings.Contains(out, "</svg>\n<!-- sundial ") {
		t.Errorf("missing closing comment:\n%s", out)
	}
}

func TestDocumentGroupTags(t *testing.T) {
	styles := DefaultStyles()
	out := renderDocument(t, func(d *Document) {
		d.GroupStart(FamilyStandard, styles.Families[FamilyStandard])
		d.GroupEnd()
	})
	if !strings.Contains(out, "<g class=\"std\" stroke=\"#00AA00\" stroke-width=\"1\" fill=\"none\" >") {
		t.Errorf("missing group open tag:\n%s", out)
	}
	if !strings.Contains(out, "</g><!-- std -->") {
		t.Errorf("missing group close tag:\n%s", out)
	}
}

func TestDocumentPolylineFlushOnPenLift(t *testing.T) {
	styles := DefaultStyles()
	out := renderDocument(t, func(d *Document) {
		d.GroupStart(FamilyConic, styles.Families[FamilyConic])
		d.LineTo(geom.Coord{X: 0, Y: 0})
		d.LineTo(geom.Coord{X: 1, Y: 0})
		d.LineTo(geom.Coord{X: 1, Y: 1})
		d.LineEnd()
		d.GroupEnd()
	})
	if !strings.Contains(out, "<polyline points=\"501,501 701,501 701,301\" />") {
		t.Errorf("missing flushed polyline:\n%s", out)
	}
}

func TestDocumentSinglePointStrokeSuppressed(t *testing.T) {
	styles := DefaultStyles()
	out := renderDocument(t, func(d *Document) {
		d.GroupStart(FamilyConic, styles.Families[FamilyConic])
		d.LineTo(geom.Coord{X: 0.5, Y: 0.5})
		d.LineEnd()
		d.GroupEnd()
	})
	if strings.Contains(out, "<polyline") {
		t.Errorf("one-point stroke should not produce a polyline:\n%s", out)
	}
}

func TestDocumentCoordinateRounding(t *testing.T) {
	styles := DefaultStyles()
	out := renderDocument(t, func(d *Document) {
		d.GroupStart(FamilyStandard, styles.Families[FamilyStandard])
		d.Line(geom.Coord{X: 0.123456, Y: 0}, geom.Coord{X: 0, Y: 0.987654})
		d.GroupEnd()
	})
	// 501 + 200*0.123456 = 525.6912 rounds to 525.7.
	if !strings.Contains(out, "<line x1=\"525.7\" y1=\"501\" x2=\"501\" y2=\"303.5\" />") {
		t.Errorf("coordinates not rounded to one decimal:\n%s", out)
	}
}

func TestDocumentHighlightOverridesStroke(t *testing.T) {
	styles := DefaultStyles()
	out := renderDocument(t, func(d *Document) {
		d.GroupStart(FamilyStandard, styles.Families[FamilyStandard])
		d.Highlight(true)
		d.LineTo(geom.Coord{X: 0, Y: 0})
		d.LineTo(geom.Coord{X: 1, Y: 0})
		d.LineEnd()
		d.Highlight(false)
		d.LineTo(geom.Coord{X: 0, Y: 0})
		d.LineTo(geom.Coord{X: 0, Y: 1})
		d.LineEnd()
		d.GroupEnd()
	})
	if !strings.Contains(out, "<polyline stroke=\"#55FF55\" points=") {
		t.Errorf("highlighted stroke missing per-element color:\n%s", out)
	}
	if !strings.Contains(out, "<polyline points=\"501,501 501,301\" />") {
		t.Errorf("normal stroke should inherit the group color:\n%s", out)
	}
}

func TestDocumentTextBoxEscapesContent(t *testing.T) {
	out := renderDocument(t, func(d *Document) {
		d.TextBox(10, 20, []string{"Lat  46<30'", "", "ori  30:00"})
	})
	if !strings.Contains(out, "transform=\"translate(10,20)\"") {
		t.Errorf("textbox missing translate:\n%s", out)
	}
	if !strings.Contains(out, "Lat&#160;&#160;46&lt;30&#39;") {
		t.Errorf("textbox content not escaped:\n%s", out)
	}
}

func TestDocumentCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dial.svg")
	d, err := NewDocument(path, testTransform(), DefaultStyles())
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got := strings.Count(string(data), "</svg>"); got != 1 {
		t.Errorf("document closed %d times, want 1", got)
	}
}
