package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/jbeda/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Snapshot is the headless raster back end: it draws into an
// offscreen RGBA buffer and encodes it as a WebP image on Close.
type Snapshot struct {
	tr     Transform
	styles StyleSet
	path   string

	img *image.RGBA

	group   Family
	style   LineStyle
	color   Color
	width   int
	pen     bool
	lastPos geom.Coord

	closed bool
}

// NewSnapshot allocates the buffer and fills it with the background.
func NewSnapshot(path string, tr Transform, styles StyleSet) (*Snapshot, error) {
	img := image.NewRGBA(image.Rect(0, 0, tr.Width, tr.Height))
	bg := styles.Background
	draw.Draw(img, img.Bounds(),
		image.NewUniform(color.RGBA{bg.R, bg.G, bg.B, 0xFF}), image.Point{}, draw.Src)
	return &Snapshot{
		tr:     tr,
		styles: styles,
		path:   path,
		img:    img,
		color:  styles.Foreground,
		width:  1,
	}, nil
}

func (s *Snapshot) rgba() color.RGBA {
	return color.RGBA{s.color.R, s.color.G, s.color.B, 0xFF}
}

func (s *Snapshot) gx(p geom.Coord) (int, int) {
	q := s.tr.Apply(p)
	return int(q.X), int(q.Y)
}

// plot stamps a width-sized dot, keeping strokes visibly continuous
// for widths above one pixel.
func (s *Snapshot) plot(x, y int, c color.RGBA) {
	r := s.width / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			s.img.SetRGBA(x+dx, y+dy, c)
		}
	}
	if r == 0 {
		s.img.SetRGBA(x, y, c)
	}
}

// bresenham walks the segment one pixel at a time.
func (s *Snapshot) bresenham(x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		s.plot(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s *Snapshot) GroupStart(f Family, style LineStyle) {
	s.group = f
	s.style = style
	s.color = style.Color
	s.width = style.Width
}

func (s *Snapshot) GroupEnd() {
	s.LineEnd()
	s.color = s.styles.Foreground
	s.width = 1
}

func (s *Snapshot) Highlight(on bool) {
	if on {
		s.color = s.style.Bold
	} else {
		s.color = s.style.Color
	}
}

func (s *Snapshot) Line(p1, p2 geom.Coord) {
	x1, y1 := s.gx(p1)
	x2, y2 := s.gx(p2)
	s.bresenham(x1, y1, x2, y2, s.rgba())
	s.lastPos = p2
}

func (s *Snapshot) LineTo(p geom.Coord) {
	if s.pen {
		x1, y1 := s.gx(s.lastPos)
		x2, y2 := s.gx(p)
		s.bresenham(x1, y1, x2, y2, s.rgba())
	}
	s.lastPos = p
	s.pen = true
}

func (s *Snapshot) LineEnd() {
	s.pen = false
}

func (s *Snapshot) Rect(bottomLeft geom.Coord, w, h float64) {
	x1, y1 := s.gx(geom.Coord{X: bottomLeft.X, Y: bottomLeft.Y + h})
	x2 := x1 + int(s.tr.Scale*w)
	y2 := y1 + int(s.tr.Scale*h)
	c := s.rgba()
	s.bresenham(x1, y1, x2, y1, c)
	s.bresenham(x2, y1, x2, y2, c)
	s.bresenham(x2, y2, x1, y2, c)
	s.bresenham(x1, y2, x1, y1, c)
}

// Circle draws the outline with the midpoint algorithm.
func (s *Snapshot) Circle(center geom.Coord, r float64) {
	cx, cy := s.gx(center)
	c := s.rgba()
	x, y := int(r), 0
	err := 1 - int(r)
	for x >= y {
		for _, p := range [8][2]int{
			{cx + x, cy + y}, {cx - x, cy + y}, {cx + x, cy - y}, {cx - x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x}, {cx + y, cy - x}, {cx - y, cy - x},
		} {
			s.img.SetRGBA(p[0], p[1], c)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (s *Snapshot) Marker(p geom.Coord, r float64) {
	cx, cy := s.gx(p)
	c := s.rgba()
	ri := int(r)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if dx*dx+dy*dy <= ri*ri {
				s.img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

// TextBox renders stacked lines with the fixed 7x13 face, framed by a
// one-pixel border.
func (s *Snapshot) TextBox(x, y int, lines []string) {
	const lineHeight = 14
	c := s.rgba()
	drawer := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}

	width := 0
	ty := y + lineHeight
	for _, line := range lines {
		if line == "" {
			ty += lineHeight / 3
			continue
		}
		if w := drawer.MeasureString(line).Ceil(); w > width {
			width = w
		}
		drawer.Dot = fixed.P(x+3, ty)
		drawer.DrawString(line)
		ty += lineHeight
	}
	s.bresenham(x, y, x+width+6, y, c)
	s.bresenham(x+width+6, y, x+width+6, ty-lineHeight/2, c)
	s.bresenham(x+width+6, ty-lineHeight/2, x, ty-lineHeight/2, c)
	s.bresenham(x, ty-lineHeight/2, x, y, c)
}

func (s *Snapshot) Redraw() {}

// Wait is a no-op for the snapshot back end.
func (s *Snapshot) Wait() bool { return false }

// Close encodes the buffer to the output file. A partially created
// file is removed when encoding fails.
func (s *Snapshot) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path, err)
	}
	if err := nativewebp.Encode(f, s.img, nil); err != nil {
		f.Close()
		os.Remove(s.path)
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	return nil
}
