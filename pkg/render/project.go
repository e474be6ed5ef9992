package render

import "math"

// MinProjectionDepth is the default depth clamp in world units
const MinProjectionDepth = 10.0

// Point3 is a point in world space. Z runs along the track, Y is up.
type Point3 struct {
	X, Y, Z float64
}

// Camera is the eye the road is projected through
type Camera struct {
	X, Y, Z  float64
	Depth    float64 // Focal distance, 1/tan(fov/2)
	MinDepth float64 // Relative depth clamp, MinProjectionDepth when zero
}

// Viewport is the target surface size in pixels
type Viewport struct {
	W, H float64
}

// Projection is a world point mapped onto the viewport
type Projection struct {
	ScreenX   float64
	ScreenY   float64
	Scale     float64
	HalfWidth float64 // Projected road half-width in pixels
}

// Project maps a world point to screen space. Points at or behind the
// camera are clamped to the minimum depth so the scale never blows up.
func Project(world Point3, cam Camera, vp Viewport, roadHalfWidth float64) Projection {
	floor := cam.MinDepth
	if floor <= 0 {
		floor = MinProjectionDepth
	}

	dx := world.X - cam.X
	dy := world.Y - cam.Y
	dz := math.Max(world.Z-cam.Z, floor)

	scale := cam.Depth / dz
	halfW := vp.W / 2
	halfH := vp.H / 2

	return Projection{
		ScreenX:   halfW + scale*dx*halfW,
		ScreenY:   halfH - scale*dy*halfH,
		Scale:     scale,
		HalfWidth: scale * roadHalfWidth * halfW,
	}
}
