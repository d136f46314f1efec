// Package dial implements the sundial geometry engine: resolving the
// equivalent horizontal-dial parameters of an oriented, inclined
// wall, projecting gnomon shadows, and generating the dial's line
// families onto a canvas.
package dial

import (
	"math"

	"github.com/jbeda/geom"
)

const (
	// Small absorbs degenerate trigonometry (poles, flat dials,
	// grazing elevations) instead of failing.
	Small = 1e-10

	// Large is the magnitude a degenerate gnomon dimension reaches
	// through the Small guards, 1/Small.
	Large = 1e+10

	// fourDeg is the empirical declination offset bracketing the
	// first shadow strike on the wall. Preserved from the original
	// formulation; no documented derivation exists.
	fourDeg = math.Pi / 45

	// halfDegree is the equivalent-latitude threshold below which
	// radiating hour lines degenerate to a single line.
	halfDegree = 0.5 * math.Pi / 180
)

// Hours converts an angle in radians to hours on the 24-hour circle.
func Hours(rad float64) float64 { return rad * 12 / math.Pi }

// Input is the raw, already validated configuration the solver
// consumes. Angles are radians, the zone is in hours, distances are
// in dial units.
type Input struct {
	Latitude    float64 // positive north
	Longitude   float64 // positive west
	Orientation float64 // 0 south, positive west
	Slope       float64 // 0 flat, pi/2 vertical
	Zone        float64

	// Gnomon: either the style length or, in perpendicular mode, the
	// perpendicular height of its tip above the dial plane.
	Perpendicular bool
	Style         float64
	Height        float64

	// Panel geometry and logical origin shift.
	PanelWidth  float64
	PanelHeight float64
	OffsetX     float64
	OffsetY     float64

	// Options.
	Nocturnal bool
	Highlight bool
}

// Parameters is the resolved configuration record. It is immutable
// after Resolve; every downstream component reads it by value.
type Parameters struct {
	Lat, Lon float64
	Ori, Slo float64
	Zone     float64

	// Equivalent horizontal-dial frame of the wall.
	Lam float64 // equivalent latitude
	Lom float64 // equivalent relative longitude
	Rot float64 // rotation of the dial

	// Legal minus mean solar time, in hours and radians.
	TDiff    float64
	TDiffRad float64

	// Gnomon geometry.
	Perpendicular bool
	Style         float64 // length of the style
	Hsty          float64 // perpendicular height of its tip
	Lsty          float64 // base length, signed

	// Panel geometry, offsets include the folded-in gnomon base.
	PanelWidth  float64
	PanelHeight float64
	OffsetX     float64
	OffsetY     float64

	Nocturnal bool
	Highlight bool
}

// Resolve derives the dial parameters from raw inputs. It never
// fails: degenerate configurations are absorbed by epsilon guards and
// mode forcing so the full parameter space stays usable.
func Resolve(in Input) Parameters {
	p := Parameters{
		Lat:           in.Latitude,
		Lon:           in.Longitude,
		Ori:           in.Orientation,
		Slo:           in.Slope,
		Zone:          in.Zone,
		Perpendicular: in.Perpendicular,
		Style:         in.Style,
		Hsty:          in.Height,
		PanelWidth:    in.PanelWidth,
		PanelHeight:   in.PanelHeight,
		OffsetX:       in.OffsetX,
		OffsetY:       in.OffsetY,
		Nocturnal:     in.Nocturnal,
		Highlight:     in.Highlight,
	}

	// Equivalent latitude, longitude and rotation of the wall: the
	// location where the same dial would lie flat. A flat wall is the
	// exact identity case.
	if math.Abs(p.Slo) < Small {
		p.Lam = p.Lat
		p.Lom = 0
		p.Rot = p.Ori
	} else {
		p.Lam = math.Asin(math.Cos(p.Slo)*math.Sin(p.Lat) - math.Sin(p.Slo)*math.Cos(p.Lat)*math.Cos(p.Ori))
		p.Lom = math.Atan2(math.Sin(p.Ori), math.Cos(p.Lat)/math.Tan(p.Slo)+math.Sin(p.Lat)*math.Cos(p.Ori))
		p.Rot = math.Atan2(math.Sin(p.Ori), math.Cos(p.Ori)*math.Cos(p.Slo)+math.Sin(p.Slo)*math.Tan(p.Lat))
	}

	// Gnomon geometry. The logical origin sits below the tip of the
	// style; in style mode the base offset is folded into the panel
	// offsets so the tip stays at (0,0).
	if !p.Perpendicular {
		p.Hsty = math.Abs(math.Sin(p.Lam) * p.Style)
		p.Lsty = math.Abs(math.Cos(p.Lam) * p.Style)
		if p.Lam < 0 {
			p.Lsty = -p.Lsty
		}
		p.OffsetX -= math.Sin(p.Rot) * p.Lsty
		p.OffsetY += math.Cos(p.Rot) * p.Lsty
	}
	if p.Hsty < Small {
		// A style-length solution is degenerate here: force a unit
		// perpendicular gnomon instead.
		p.Hsty = 1.0
		p.Perpendicular = true
	}
	if p.Perpendicular {
		p.Style = math.Abs(p.Hsty / (math.Sin(p.Lam) + Small))
		p.Lsty = p.Hsty / (math.Tan(p.Lam) + Small)
	}

	p.TDiff = p.Zone + Hours(p.Lon)
	p.TDiffRad = p.TDiff / 12 * math.Pi

	return p
}

// HourAngle converts a legal hour of day to the hour angle in
// radians, zero at mean solar noon.
func (p Parameters) HourAngle(hour float64) float64 {
	return (hour - p.TDiff - 12.0) * 15 * math.Pi / 180
}

// PolarPoint converts a (direction, distance) pair in the dial plane
// to Cartesian logical coordinates. With fromBase the point is taken
// from the foot of the style instead of the origin below its tip.
func (p Parameters) PolarPoint(angle, dist float64, fromBase bool) geom.Coord {
	pt := geom.Coord{
		X: math.Sin(angle) * dist,
		Y: math.Cos(angle) * dist,
	}
	if fromBase {
		pt.X += math.Sin(p.Rot) * p.Lsty
		pt.Y -= math.Cos(p.Rot) * p.Lsty
	}
	return pt
}

// Base returns the foot of the style in logical coordinates.
func (p Parameters) Base() geom.Coord {
	return geom.Coord{
		X: math.Sin(p.Rot) * p.Lsty,
		Y: -math.Cos(p.Rot) * p.Lsty,
	}
}
