package canvas

import (
	"bufio"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/jbeda/geom"
)

// Document is the static vector back end: it writes one SVG file with
// one <g> element per line family. Polyline points accumulate and
// flush as a single <polyline> on pen lift.
type Document struct {
	tr     Transform
	styles StyleSet

	file *os.File
	w    *bufio.Writer

	group      Family
	groupColor Color
	color      Color
	width      int

	pen  bool
	poly []string

	closed bool
}

// NewDocument creates the output file and writes the SVG preamble.
func NewDocument(path string, tr Transform, styles StyleSet) (*Document, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	d := &Document{
		tr:     tr,
		styles: styles,
		file:   file,
		w:      bufio.NewWriter(file),
		color:  styles.Foreground,
		width:  1,
	}
	fmt.Fprintf(d.w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" >\n",
		tr.Width, tr.Height)
	if styles.Background.A > 0 {
		fmt.Fprintf(d.w, "<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\" />\n",
			tr.Width, tr.Height, styles.Background.Hex())
	}
	return d, nil
}

func (d *Document) gx(p geom.Coord) (float64, float64) {
	q := d.tr.Apply(p)
	return round1(q.X), round1(q.Y)
}

// stroke returns a per-element stroke attribute when the current
// color deviates from the open group's default (highlighted strokes).
func (d *Document) stroke() string {
	if d.color == d.groupColor {
		return ""
	}
	return fmt.Sprintf(" stroke=\"%s\"", d.color.Hex())
}

func (d *Document) GroupStart(f Family, style LineStyle) {
	d.group = f
	d.groupColor = style.Color
	d.color = style.Color
	d.width = style.Width
	fmt.Fprintf(d.w, "<g class=\"%s\" stroke=\"%s\" stroke-width=\"%d\" fill=\"none\" >\n",
		f.Name(), style.Color.Hex(), style.Width)
}

func (d *Document) GroupEnd() {
	d.LineEnd()
	fmt.Fprintf(d.w, "</g><!-- %s -->\n", d.group.Name())
	d.groupColor = Color{}
	d.color = d.styles.Foreground
}

func (d *Document) Highlight(on bool) {
	if on {
		d.color = d.styles.Families[d.group].Bold
	} else {
		d.color = d.styles.Families[d.group].Color
	}
}

func (d *Document) Line(p1, p2 geom.Coord) {
	x1, y1 := d.gx(p1)
	x2, y2 := d.gx(p2)
	fmt.Fprintf(d.w, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"%s />\n",
		x1, y1, x2, y2, d.stroke())
}

func (d *Document) LineTo(p geom.Coord) {
	if !d.pen {
		d.poly = d.poly[:0]
		d.pen = true
	}
	x, y := d.gx(p)
	d.poly = append(d.poly, fmt.Sprintf("%g,%g", x, y))
}

func (d *Document) LineEnd() {
	if d.pen && len(d.poly) >= 2 {
		fmt.Fprintf(d.w, "<polyline%s points=\"%s\" />\n",
			d.stroke(), strings.Join(d.poly, " "))
	}
	d.poly = d.poly[:0]
	d.pen = false
}

func (d *Document) Rect(bottomLeft geom.Coord, w, h float64) {
	x, y := d.gx(geom.Coord{X: bottomLeft.X, Y: bottomLeft.Y + h})
	fmt.Fprintf(d.w, "<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" stroke=\"%s\" stroke-width=\"%d\" fill=\"none\" />\n",
		x, y, round1(d.tr.Scale*w), round1(d.tr.Scale*h), d.color.Hex(), d.width)
}

func (d *Document) Circle(center geom.Coord, r float64) {
	x, y := d.gx(center)
	fmt.Fprintf(d.w, "<circle cx=\"%g\" cy=\"%g\" r=\"%g\" stroke=\"%s\" stroke-width=\"%d\" fill=\"none\" />\n",
		x, y, r, d.color.Hex(), d.width)
}

func (d *Document) Marker(p geom.Coord, r float64) {
	x, y := d.gx(p)
	fmt.Fprintf(d.w, "<circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\" />\n",
		x, y, r, d.color.Hex())
}

func (d *Document) TextBox(x, y int, lines []string) {
	fmt.Fprintf(d.w, "<g class=\"textbox\" style=\"font-family:consolas,monospace;font-size:16px\""+
		" transform=\"translate(%d,%d)\" fill=\"%s\" stroke=\"none\" >\n", x, y, d.color.Hex())
	height := 16
	for _, line := range lines {
		if line == "" {
			height += 5
			continue
		}
		// Non-breaking spaces keep the column alignment of the
		// monospace info block intact.
		safe := strings.ReplaceAll(html.EscapeString(line), " ", "&#160;")
		fmt.Fprintf(d.w, "<text x=\"3\" y=\"%d\">%s</text>\n", height, safe)
		height += 16
	}
	fmt.Fprintf(d.w, "</g><!-- textbox -->\n")
}

func (d *Document) Redraw() {}

// Wait is a no-op for the document back end.
func (d *Document) Wait() bool { return false }

// Close finalizes the document with a signed timestamp comment and
// releases the file. Calling it again is a no-op.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.LineEnd()
	stamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(d.w, "</svg>\n<!-- sundial %s -->\n", stamp)
	if err := d.w.Flush(); err != nil {
		d.file.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("closing document: %w", err)
	}
	return nil
}
