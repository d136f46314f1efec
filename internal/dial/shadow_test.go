package dial

import (
	"math"
	"testing"
)

// genevaHorizontal resolves a horizontal dial at Geneva with the zone
// chosen so legal noon coincides with solar noon.
func genevaHorizontal() Parameters {
	lon := deg2rad(6.1559)
	return Resolve(Input{
		Latitude:  deg2rad(46.2074),
		Longitude: lon,
		Zone:      -Hours(lon),
		Style:     1,
	})
}

func TestShadowNoonOnMeridian(t *testing.T) {
	p := genevaHorizontal()

	// At solar noon the shadow falls on the north-south axis.
	ah := p.HourAngle(12)
	pt, ok := p.Shadow(0, ah, ProjectOptions{})
	if !ok {
		t.Fatal("noon shadow not visible")
	}
	if math.Abs(pt.X) > 1e-9 {
		t.Errorf("noon shadow x = %v, want 0", pt.X)
	}

	// The noon hour line ends at the base-to-tip distance from the
	// foot of the style.
	ao := math.Atan2(math.Sin(ah-p.Lom)*math.Sin(p.Lam), math.Cos(ah-p.Lom)) - p.Rot
	tip := p.PolarPoint(ao, p.Lsty, true)
	if math.Abs(tip.X) > 1e-9 {
		t.Errorf("noon hour line x = %v, want 0", tip.X)
	}
	base := p.Base()
	dist := math.Hypot(tip.X-base.X, tip.Y-base.Y)
	if math.Abs(dist-math.Abs(p.Lsty)) > 1e-9 {
		t.Errorf("noon hour line length = %v, want %v", dist, math.Abs(p.Lsty))
	}
}

func TestShadowInvisibleBelowEquivalentPlane(t *testing.T) {
	// Whenever the sun sits below the equivalent horizontal plane
	// there is no shadow, nocturnal mode or not.
	p := Resolve(Input{
		Latitude:    deg2rad(46.2074),
		Orientation: deg2rad(30),
		Slope:       deg2rad(90),
		Style:       1,
		Nocturnal:   true,
	})
	for d := -24; d <= 24; d += 3 {
		for h := -180; h <= 180; h += 5 {
			decl := deg2rad(float64(d))
			ah := deg2rad(float64(h))
			elm := math.Asin(math.Sin(p.Lam)*math.Sin(decl) +
				math.Cos(p.Lam)*math.Cos(decl)*math.Cos(ah-p.Lom))
			_, ok := p.Shadow(decl, ah, ProjectOptions{Nocturnal: true})
			if elm <= 0 && ok {
				t.Fatalf("decl=%d° ah=%d°: visible shadow below the equivalent plane (elm=%v)", d, h, elm)
			}
			if elm > 0 && !ok {
				t.Fatalf("decl=%d° ah=%d°: no shadow despite elm=%v with nocturnal forced", d, h, elm)
			}
		}
	}
}

func TestShadowRespectsTrueHorizon(t *testing.T) {
	// A vertical wall turned west: its equivalent frame differs from
	// the true one, so the sun can light the equivalent plane while
	// sitting below the real horizon.
	p := Resolve(Input{
		Latitude:    deg2rad(46.2074),
		Orientation: deg2rad(30),
		Slope:       deg2rad(90),
		Style:       1,
	})
	decl := deg2rad(-20)
	ah := deg2rad(120)

	if _, ok := p.Shadow(decl, ah, ProjectOptions{}); ok {
		t.Error("shadow visible although the sun is below the true horizon")
	}
	if _, ok := p.Shadow(decl, ah, ProjectOptions{Nocturnal: true}); !ok {
		t.Error("nocturnal projection should admit the sun below the true horizon")
	}
}

func TestShadowDisplacement(t *testing.T) {
	p := genevaHorizontal()
	decl := deg2rad(10)
	ah := deg2rad(15)

	plain, ok := p.Shadow(decl, ah, ProjectOptions{})
	if !ok {
		t.Fatal("plain shadow not visible")
	}

	off := Offset{X: 0.1, Y: -0.2, Z: 0.1}
	displaced, ok := p.Shadow(decl, ah, ProjectOptions{Offset: off})
	if !ok {
		t.Fatal("displaced shadow not visible")
	}
	if displaced == plain {
		t.Error("displacement had no effect")
	}

	// The displacement is scoped to its own call: projecting again
	// without it reproduces the plain result exactly.
	again, ok := p.Shadow(decl, ah, ProjectOptions{})
	if !ok {
		t.Fatal("repeat shadow not visible")
	}
	if again != plain {
		t.Errorf("projection after displaced call = %v, want %v", again, plain)
	}
}

func TestShadowLengthGrowsTowardGrazing(t *testing.T) {
	p := genevaHorizontal()

	// Shadows lengthen as the sun drops toward the equivalent plane.
	high, ok := p.Shadow(deg2rad(20), 0, ProjectOptions{})
	if !ok {
		t.Fatal("high sun shadow not visible")
	}
	low, ok := p.Shadow(deg2rad(20), deg2rad(60), ProjectOptions{})
	if !ok {
		t.Fatal("low sun shadow not visible")
	}
	if math.Hypot(low.X, low.Y) <= math.Hypot(high.X, high.Y) {
		t.Errorf("low sun shadow (%v) not longer than high sun shadow (%v)", low, high)
	}
}
