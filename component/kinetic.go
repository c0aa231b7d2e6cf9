package component

import "math"

// Vec3 is a world-space point, Y up
type Vec3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// DistanceXZ is the horizontal distance, ignoring height
func (v Vec3) DistanceXZ(o Vec3) float64 {
	d := v.Sub(o)
	return math.Hypot(d.X, d.Z)
}
