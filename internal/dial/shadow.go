package dial

import (
	"math"

	"github.com/jbeda/geom"
)

// Offset is a temporary 3-axis displacement of the gnomon tip, used
// while projecting the auxiliary marker shapes. X and Y shift the
// projected point in the dial plane, Z raises the effective height.
type Offset struct {
	X, Y, Z float64
}

// ProjectOptions tune a single shadow projection. The zero value is
// the plain case: real sun, undisplaced gnomon, origin-relative
// point.
type ProjectOptions struct {
	// Nocturnal admits shadows of a sun below the true horizon for
	// this one projection, regardless of the dial-wide setting.
	Nocturnal bool
	// Offset displaces the gnomon tip for this projection only.
	Offset Offset
	// FromBase shifts the result by the style's base offset.
	FromBase bool
}

// Shadow projects the gnomon tip's shadow for a given solar
// declination and hour angle, both in radians. It reports false when
// no visible shadow falls on the dial: the sun must be above the
// equivalent horizontal plane, and above the real horizon unless
// nocturnal lines are requested.
func (p Parameters) Shadow(decl, hourAngle float64, opt ProjectOptions) (geom.Coord, bool) {
	ahm := hourAngle - p.Lom

	// Elevation above the equivalent horizontal plane, and the true
	// elevation above the real horizon.
	elm := math.Asin(math.Sin(p.Lam)*math.Sin(decl) + math.Cos(p.Lam)*math.Cos(decl)*math.Cos(ahm))
	els := math.Asin(math.Sin(p.Lat)*math.Sin(decl) + math.Cos(p.Lat)*math.Cos(decl)*math.Cos(hourAngle))

	if elm <= 0 || !(p.Nocturnal || opt.Nocturnal || els > 0) {
		return geom.Coord{}, false
	}

	azimuth := math.Atan2(math.Sin(ahm), math.Sin(p.Lam)*math.Cos(ahm)-math.Cos(p.Lam)*math.Tan(decl))
	length := (p.Hsty + opt.Offset.Z) / (math.Tan(elm) + Small)

	pt := p.PolarPoint(azimuth-p.Rot, length, opt.FromBase)
	pt.X += opt.Offset.X
	pt.Y += opt.Offset.Y
	return pt, true
}
