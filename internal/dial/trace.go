package dial

import (
	"math"

	"github.com/jbeda/geom"
	"go.uber.org/zap"

	"github.com/harfang-mgf/sundial/internal/canvas"
	"github.com/harfang-mgf/sundial/internal/ephem"
	"github.com/harfang-mgf/sundial/internal/logger"
)

// Legal hours drawn on the dial, inclusive.
const (
	firstHour = 0
	lastHour  = 24
)

// conic day-curves are swept in 2-degree hour-angle steps, a constant
// preserved from the original formulation.
const conicStep = math.Pi / 90

// Generator walks the solar table and the hours of the day and emits
// every enabled line family to one canvas. All geometry is computed
// in the dial's logical plane; the canvas owns the device mapping.
type Generator struct {
	par    Parameters
	table  ephem.Table
	cv     canvas.Canvas
	styles canvas.StyleSet
	clip   float64 // logical distance beyond which points are dropped

	marker bool // emit markers instead of polyline points
}

// NewGenerator binds resolved parameters, a solar table and a canvas.
// The clip limit is in logical units, normally Transform.ClipLimit.
func NewGenerator(par Parameters, table ephem.Table, cv canvas.Canvas, styles canvas.StyleSet, clip float64) *Generator {
	return &Generator{par: par, table: table, cv: cv, styles: styles, clip: clip}
}

// Run draws the dial: panel decorations first, then each enabled
// family in index order. The canvas is left open; the caller decides
// when to Wait and Close.
func (g *Generator) Run() {
	g.decorations()
	g.infoText()
	g.standardHours()
	g.extremeShadows()
	g.dayCurves()
	g.equationOfTime()
	g.shapes()
	g.cv.Redraw()
}

// start opens a family group unless the family is disabled.
func (g *Generator) start(f canvas.Family) bool {
	style := g.styles.Families[f]
	if !style.On {
		logger.Debug("family skipped", zap.String("family", f.Name()))
		return false
	}
	g.cv.GroupStart(f, style)
	return true
}

func (g *Generator) end() {
	g.cv.GroupEnd()
	g.cv.Redraw()
}

// highlight switches to the bold color at cardinal moments, unless
// highlighting is suppressed dial-wide.
func (g *Generator) highlight(on bool) {
	g.cv.Highlight(g.par.Highlight && on)
}

// emit forwards a logical point to the canvas, skipping points far
// outside the visible area. Skipping does not lift the pen.
func (g *Generator) emit(pt geom.Coord) {
	if math.Hypot(pt.X, pt.Y) > g.clip {
		return
	}
	if g.marker {
		g.cv.Marker(pt, 3)
	} else {
		g.cv.LineTo(pt)
	}
}

// shadow projects one shadow point and emits it when visible.
func (g *Generator) shadow(decl, hourAngle float64, opt ProjectOptions) bool {
	pt, ok := g.par.Shadow(decl, hourAngle, opt)
	if !ok {
		return false
	}
	g.emit(pt)
	return true
}

// decorations draws the dial panel, the style base and the origin
// marks with the default foreground.
func (g *Generator) decorations() {
	p := g.par
	if p.PanelWidth > 0 && p.PanelHeight > 0 {
		g.cv.Rect(geom.Coord{X: -p.PanelWidth/2 - p.OffsetX, Y: -p.PanelHeight/2 - p.OffsetY},
			p.PanelWidth, p.PanelHeight)
	}
	g.cv.Circle(p.Base(), 2)
	g.cv.Circle(geom.Coord{}, 1)
	g.cv.Circle(geom.Coord{}, 7)
	g.cv.Redraw()
}

// infoText writes the parameter summary block.
func (g *Generator) infoText() {
	if !g.start(canvas.FamilyInfo) {
		return
	}
	g.cv.TextBox(10, 10, g.par.InfoLines())
	g.end()
}

// standardHours draws the classic radiating hour lines from the base
// of the style, noon highlighted. The family degenerates to a single
// line within half a degree of the equivalent equator and is skipped
// entirely there.
func (g *Generator) standardHours() {
	if math.Abs(g.par.Lam) <= halfDegree {
		logger.Debug("standard hours skipped: equivalent latitude too small",
			zap.Float64("lam", g.par.Lam))
		return
	}
	if !g.start(canvas.FamilyStandard) {
		return
	}
	for hour := firstHour; hour <= lastHour; hour++ {
		g.highlight(hour == 12)
		ah := g.par.HourAngle(float64(hour))
		ao := math.Atan2(math.Sin(ah-g.par.Lom)*math.Sin(g.par.Lam), math.Cos(ah-g.par.Lom)) - g.par.Rot
		g.emit(g.par.PolarPoint(0, 0, true))
		g.emit(g.par.PolarPoint(ao, g.par.Lsty, true))
		g.cv.LineEnd()
	}
	g.end()
}

// extremeShadows draws the envelope curves bounding all possible
// daily shadow positions: the two solstices, the declination of
// sunset at each hour, and the declinations bracketing the first
// shadow strike on the wall.
func (g *Generator) extremeShadows() {
	if !g.start(canvas.FamilyExtreme) {
		return
	}
	tropic := rad(ephem.Obliquity)
	for q := firstHour * 4; q <= lastHour*4; q++ {
		hour := float64(q) / 4
		ah := g.par.HourAngle(hour)
		g.highlight(q%4 == 0)

		// summer solstice
		g.shadow(tropic, ah, ProjectOptions{})

		// declination of sunset for that hour: the sun sits on the
		// true horizon, so the point only exists as a virtual shadow
		if math.Abs(g.par.Lat) > halfDegree && !g.par.Nocturnal {
			t := math.Atan(-math.Cos(ah) / math.Tan(g.par.Lat))
			if math.Abs(t) <= tropic {
				g.shadow(t, ah, ProjectOptions{Nocturnal: true})
			}
		}

		// declination of the first shadow on the wall for that hour
		if math.Abs(g.par.Lam) > halfDegree {
			t := math.Atan(-math.Cos(ah-g.par.Lom) / math.Tan(g.par.Lam))
			if math.Abs(t+fourDeg) <= tropic {
				g.shadow(t+fourDeg, ah, ProjectOptions{})
			}
			if math.Abs(t-fourDeg) <= tropic {
				g.shadow(t-fourDeg, ah, ProjectOptions{})
			}
		}

		// winter solstice
		g.shadow(-tropic, ah, ProjectOptions{})
		g.cv.LineEnd()
	}
	g.end()
}

// dayCurves traces the conic curve the shadow tip follows over one
// day, for a fixed set of declinations every 30 degrees of ecliptic
// longitude between the solstices.
func (g *Generator) dayCurves() {
	if !g.start(canvas.FamilyConic) {
		return
	}
	for l := 90; l <= 270 && l < len(g.table); l += 30 {
		g.highlight(l%90 == 0)
		decl := rad(g.table[l].Decl)

		set, ok := g.sunsetAngle(decl)
		if !ok {
			continue
		}
		for a := -set + math.Pi/180; a <= set-math.Pi/180; a += conicStep {
			g.shadow(decl, a+g.par.Lom, ProjectOptions{})
		}
		g.cv.LineEnd()
	}
	g.end()
}

// sunsetAngle returns the hour angle of sunset at the equivalent
// latitude for a declination, pi when the sun never sets, and false
// when it never rises.
func (g *Generator) sunsetAngle(decl float64) (float64, bool) {
	s := -math.Tan(decl) * math.Tan(g.par.Lam)
	switch {
	case s >= 1:
		return 0, false
	case s > -1:
		return math.Acos(s), true
	default:
		return math.Pi, true
	}
}

// equationOfTime draws, for each legal hour, the closed loop traced
// over the year by the shadow at that clock hour. The pen lifts
// across the stretches of the year where the shadow is not visible.
func (g *Generator) equationOfTime() {
	if !g.start(canvas.FamilyEquation) {
		return
	}
	for hour := firstHour; hour <= lastHour; hour++ {
		ah := g.par.HourAngle(float64(hour))
		g.highlight(hour == 12)
		drawing := false
		for _, e := range g.table {
			if g.shadow(rad(e.Decl), ah+rad(e.EqTime/4), ProjectOptions{}) {
				drawing = true
			} else if drawing {
				g.cv.LineEnd()
				drawing = false
			}
		}
		g.cv.LineEnd()
	}
	g.end()
}

// shapes decorates the dial with small octahedron markers: for a
// symmetric set of declinations and each hour inside that day's
// sunset window, a filled marker at the shadow point and one stroke
// through the outline of the displaced gnomon tip. The displacement
// applies per projection only; nothing leaks into later families.
func (g *Generator) shapes() {
	if !g.start(canvas.FamilyShape) {
		return
	}
	for i := -3; i <= 3; i++ {
		t := math.Asin(math.Sin(float64(i)*math.Pi/6) * math.Sin(rad(ephem.Obliquity)))
		set, ok := g.sunsetAngle(t)
		if !ok {
			continue
		}
		for hour := firstHour; hour <= lastHour; hour++ {
			ah := g.par.HourAngle(float64(hour))
			if ah-g.par.Lom < -set || ah-g.par.Lom > set {
				continue
			}
			g.marker = true
			g.shadow(t+Small, ah, ProjectOptions{})
			g.marker = false
			for _, o := range octahedron {
				g.shadow(t+Small, ah, ProjectOptions{Offset: o})
			}
			g.cv.LineEnd()
		}
	}
	g.end()
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
