package canvas

import (
	"fmt"
	"runtime"

	"github.com/jbeda/geom"
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/harfang-mgf/sundial/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Screen is the interactive raster back end: an SDL2 window the dial
// is drawn into as the families are generated. Wait blocks until the
// user dismisses the window.
type Screen struct {
	tr     Transform
	styles StyleSet

	window   *sdl.Window
	renderer *sdl.Renderer

	group   Family
	style   LineStyle
	color   Color
	width   int
	inGroup bool

	pen     bool
	lastPos geom.Coord

	closed bool
}

// NewScreen opens the window and clears it to the background color.
func NewScreen(title string, tr Transform, styles StyleSet, fullscreen bool) (*Screen, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(tr.Width),
		int32(tr.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	if fullscreen {
		w, h := window.GetSize()
		tr.Width, tr.Height = int(w), int(h)
	}

	s := &Screen{
		tr:       tr,
		styles:   styles,
		window:   window,
		renderer: renderer,
		color:    styles.Foreground,
		width:    1,
	}

	bg := styles.Background
	s.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	s.renderer.Clear()
	s.renderer.Present()

	logger.Info("window opened",
		zap.Int("width", tr.Width), zap.Int("height", tr.Height))
	return s, nil
}

// Transform returns the effective transform, adjusted for the actual
// window size in fullscreen mode.
func (s *Screen) Transform() Transform { return s.tr }

func (s *Screen) gx(p geom.Coord) (int32, int32) {
	q := s.tr.Apply(p)
	return int32(q.X), int32(q.Y)
}

func (s *Screen) GroupStart(f Family, style LineStyle) {
	s.group = f
	s.style = style
	s.color = style.Color
	s.width = style.Width
	s.inGroup = true
}

func (s *Screen) GroupEnd() {
	s.LineEnd()
	s.inGroup = false
	s.color = s.styles.Foreground
	s.width = 1
}

func (s *Screen) Highlight(on bool) {
	if on {
		s.color = s.style.Bold
	} else {
		s.color = s.style.Color
	}
}

func (s *Screen) drawSegment(p1, p2 geom.Coord) {
	x1, y1 := s.gx(p1)
	x2, y2 := s.gx(p2)
	c := s.color
	gfx.ThickLineRGBA(s.renderer, x1, y1, x2, y2, int32(s.width), c.R, c.G, c.B, c.A)
}

func (s *Screen) Line(p1, p2 geom.Coord) {
	s.drawSegment(p1, p2)
	s.lastPos = p2
}

func (s *Screen) LineTo(p geom.Coord) {
	if s.pen {
		s.drawSegment(s.lastPos, p)
	}
	s.lastPos = p
	s.pen = true
}

func (s *Screen) LineEnd() {
	s.pen = false
}

func (s *Screen) Rect(bottomLeft geom.Coord, w, h float64) {
	x1, y1 := s.gx(geom.Coord{X: bottomLeft.X, Y: bottomLeft.Y + h})
	c := s.color
	gfx.RectangleRGBA(s.renderer,
		x1, y1, x1+int32(s.tr.Scale*w), y1+int32(s.tr.Scale*h),
		c.R, c.G, c.B, c.A)
}

func (s *Screen) Circle(center geom.Coord, r float64) {
	x, y := s.gx(center)
	c := s.color
	gfx.CircleRGBA(s.renderer, x, y, int32(r), c.R, c.G, c.B, c.A)
}

func (s *Screen) Marker(p geom.Coord, r float64) {
	x, y := s.gx(p)
	c := s.color
	gfx.FilledCircleRGBA(s.renderer, x, y, int32(r), c.R, c.G, c.B, c.A)
}

// TextBox renders stacked lines with the 8x8 built-in font, framed by
// a one-pixel border.
func (s *Screen) TextBox(x, y int, lines []string) {
	const lineHeight = 10
	c := s.color

	width := 0
	height := 3
	for _, line := range lines {
		if line == "" {
			height += lineHeight / 3
			continue
		}
		if len(line)*8 > width {
			width = len(line) * 8
		}
		height += lineHeight
	}

	ty := y + 3
	for _, line := range lines {
		if line == "" {
			ty += lineHeight / 3
			continue
		}
		gfx.StringRGBA(s.renderer, int32(x+3), int32(ty), line, c.R, c.G, c.B, c.A)
		ty += lineHeight
	}
	gfx.RectangleRGBA(s.renderer,
		int32(x), int32(y), int32(x+width+6), int32(y+height+3),
		c.R, c.G, c.B, c.A)
}

func (s *Screen) Redraw() {
	s.renderer.Present()
}

// Wait blocks until a key is pressed or the window is closed. It
// reports true when the user quit (escape, q, or window close) rather
// than advancing with another key.
func (s *Screen) Wait() bool {
	s.renderer.Present()
	for {
		event := sdl.WaitEvent()
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Sym == sdl.K_ESCAPE || e.Keysym.Sym == sdl.K_q {
				return true
			}
			return false
		}
	}
}

// Close destroys the renderer and window and shuts SDL down. Calling
// it again is a no-op.
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	logger.Info("closing window")
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}
