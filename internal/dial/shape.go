package dial

// octahedron is the auxiliary marker solid: an ordered outline of
// gnomon-tip displacements traced around a small octahedron. The
// closing entries revisit shared vertices so one continuous stroke
// covers every edge.
var octahedron = []Offset{
	{0.0, 0.0, 0.1},
	{-0.1, 0.0, 0.0},
	{0.0, 0.0, -0.1},
	{0.1, 0.0, 0.0},
	{0.0, 0.1, 0.0},
	{-0.1, 0.0, 0.0},
	{0.0, -0.1, 0.0},
	{0.1, 0.0, 0.0},
	{0.0, 0.0, 0.1},
	{0.0, 0.1, 0.0},
	{0.0, 0.0, -0.1},
	{0.0, -0.1, 0.0},
	{0.0, 0.0, 0.1},
}
