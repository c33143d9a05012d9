package posture

import "math"

type Point struct {
	X float64
	Y float64
}

func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// SlopeAngle returns the angle of the line p->q against the horizontal, in
// degrees. Image coordinates grow downward, so a positive angle means q sits
// lower in the frame than p.
func SlopeAngle(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X) * 180 / math.Pi
}

// AngularDiff returns the separation between two angles in degrees, reduced
// to [0, 180]. Reversing the endpoints of a line shifts its slope angle by
// 180, so a raw subtraction would jump across the atan2 wrap.
func AngularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// AngleAt returns the interior angle at vertex b formed by the rays b->a and
// b->c, in degrees. ok is false when either ray has zero length and the angle
// is undefined.
func AngleAt(a, b, c Point) (float64, bool) {
	ba := Point{X: a.X - b.X, Y: a.Y - b.Y}
	bc := Point{X: c.X - b.X, Y: c.Y - b.Y}

	magBA := math.Hypot(ba.X, ba.Y)
	magBC := math.Hypot(bc.X, bc.Y)
	if magBA == 0 || magBC == 0 {
		return 0, false
	}

	cos := (ba.X*bc.X + ba.Y*bc.Y) / (magBA * magBC)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi, true
}
