// Package ephem provides the precomputed solar table driving the
// seasonal line families: one (declination, equation of time) sample
// per degree of solar ecliptic longitude over a full year.
package ephem

import "math"

// Orbital constants, NOAA solar calculator values for epoch 2000.
const (
	// Obliquity is the tilt of the earth's axis in degrees, the
	// maximum solar declination reached at the solstices.
	Obliquity = 23.4367

	eccentricity = 0.016709
	perihelion   = 282.9372 // longitude of perihelion, degrees
)

// Entry is one solar sample: declination in degrees and equation of
// time in minutes (apparent minus mean solar time).
type Entry struct {
	Decl   float64
	EqTime float64
}

// Table is a read-only year of solar samples indexed by ecliptic
// longitude in whole degrees, starting at the March equinox.
type Table []Entry

// NewTable computes the 360-entry solar table. Declination follows
// sin(decl) = sin(obliquity)*sin(longitude); the equation of time is
// the angular gap between the mean sun and the true sun's right
// ascension, four minutes per degree.
func NewTable() Table {
	table := make(Table, 360)
	for l := range table {
		lon := float64(l)
		table[l] = Entry{
			Decl:   declination(lon),
			EqTime: equationOfTime(lon),
		}
	}
	return table
}

func declination(lon float64) float64 {
	return deg(math.Asin(math.Sin(rad(Obliquity)) * math.Sin(rad(lon))))
}

func equationOfTime(lon float64) float64 {
	// True anomaly, then mean anomaly by inverting the equation of
	// the center to second order in the eccentricity.
	nu := lon - perihelion
	m := nu - deg(2*eccentricity*math.Sin(rad(nu))) +
		deg(1.25*eccentricity*eccentricity*math.Sin(2*rad(nu)))

	// Right ascension of the true sun on the equator.
	alpha := deg(math.Atan2(math.Sin(rad(lon))*math.Cos(rad(Obliquity)), math.Cos(rad(lon))))

	// Mean longitude minus right ascension, wrapped to (-180, 180].
	gap := math.Mod(m+perihelion-alpha, 360)
	if gap > 180 {
		gap -= 360
	} else if gap <= -180 {
		gap += 360
	}
	return 4 * gap
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }
