package dial

import (
	"fmt"
	"math"

	"github.com/harfang-mgf/sundial/pkg/angle"
)

// InfoLines formats the parameter summary shown in the info text
// block. Empty strings separate the geographic, wall and gnomon
// sections.
func (p Parameters) InfoLines() []string {
	dm := func(format string, rad float64) string {
		d, m := angle.ToDM(rad)
		return fmt.Sprintf(format, d, m)
	}
	hm := func(format string, hours float64) string {
		h, m := angle.ToHM(hours / 12 * math.Pi)
		return fmt.Sprintf(format, h, m)
	}

	info := []string{
		dm("Lat %4d°%02d'", p.Lat),
	}
	if p.Lon != 0 {
		info = append(info,
			dm("Lon %4d°%02d'", p.Lon),
			hm("zone %+3d:%02d", p.Zone),
			hm("diff %+3d:%02d", p.TDiff),
		)
	}
	if p.Slo != 0 {
		info = append(info,
			"",
			dm("ori %+4d°%02d'", p.Ori),
			dm("slo %+4d°%02d'", p.Slo),
			"",
			dm("rot %+4d°%02d'", p.Rot),
			dm("lam %+4d°%02d'", p.Lam),
			dm("lom %+4d°%02d'", p.Lom),
		)
		h, m := angle.ToHM(p.Lom)
		info = append(info, fmt.Sprintf("diff %+3d:%02d", h, m))
	}
	// Degenerate gnomon dimensions are meaningless numbers; leave
	// them out of the block.
	if p.Style < Large {
		info = append(info,
			"",
			fmt.Sprintf("styl%7.2f", p.Style),
			fmt.Sprintf("hsty%7.2f", p.Hsty),
		)
	}
	if p.Lsty < Large {
		info = append(info, fmt.Sprintf("lsty%7.2f", p.Lsty))
	}
	return info
}
