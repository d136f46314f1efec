package canvas

import (
	"math"
	"testing"

	"github.com/jbeda/geom"
)

func TestTransformCentersOrigin(t *testing.T) {
	tr := Transform{Width: 1000, Height: 1000, Scale: 200}
	got := tr.Apply(geom.Coord{})
	want := geom.Coord{X: 501, Y: 501}
	if got != want {
		t.Errorf("Apply(origin) = %v, want %v", got, want)
	}
}

func TestTransformScalesAndFlips(t *testing.T) {
	tr := Transform{Width: 1000, Height: 1000, Scale: 200}
	got := tr.Apply(geom.Coord{X: 1, Y: 1})
	// x grows right, y grows up in logical space, down on the device.
	want := geom.Coord{X: 701, Y: 301}
	if got != want {
		t.Errorf("Apply(1,1) = %v, want %v", got, want)
	}
}

func TestTransformAppliesOffsets(t *testing.T) {
	tr := Transform{Width: 1000, Height: 1000, Scale: 100, OffsetX: -0.3, OffsetY: 1.0}
	got := tr.Apply(geom.Coord{X: 0.3, Y: -1.0})
	want := geom.Coord{X: 501, Y: 501}
	if got != want {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestTransformClipLimit(t *testing.T) {
	tr := Transform{Width: 1000, Height: 1000, Scale: 200}
	if got, want := tr.ClipLimit(), 50.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("ClipLimit = %v, want %v", got, want)
	}
}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"txt", FamilyInfo},
		{"std", FamilyStandard},
		{"ext", FamilyExtreme},
		{"hyp", FamilyConic},
		{"teq", FamilyEquation},
		{"sha", FamilyShape},
		{"0", FamilyInfo},
		{"5", FamilyShape},
	}
	for _, tt := range tests {
		got, err := ParseFamily(tt.in)
		if err != nil {
			t.Errorf("ParseFamily(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFamily(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFamilyErrors(t *testing.T) {
	for _, in := range []string{"", "bogus", "6", "-1", "99"} {
		if _, err := ParseFamily(in); err == nil {
			t.Errorf("ParseFamily(%q) expected error, got none", in)
		}
	}
}

func TestFamilyName(t *testing.T) {
	if got := FamilyConic.Name(); got != "hyp" {
		t.Errorf("FamilyConic.Name() = %q, want \"hyp\"", got)
	}
	if got := Family(42).Name(); got != "???" {
		t.Errorf("Family(42).Name() = %q, want \"???\"", got)
	}
}

func TestColorHex(t *testing.T) {
	c := Color{0x00, 0xAA, 0x55, 0xFF}
	if got := c.Hex(); got != "#00AA55" {
		t.Errorf("Hex() = %q, want \"#00AA55\"", got)
	}
}
