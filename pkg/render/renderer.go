package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/golangdaddy/apexdrift/pkg/config"
	"github.com/golangdaddy/apexdrift/pkg/road"
	"github.com/golangdaddy/apexdrift/pkg/vehicle"
)

// Layer tells the rasterizer what a quad is. Quads are already in paint order.
type Layer int

const (
	LayerShoulder Layer = iota
	LayerKerb
	LayerRoad
	LayerTrailGlow
	LayerTrail
)

// Vec2 is a screen-space point
type Vec2 struct {
	X, Y float32
}

// Quad is a filled trapezoid, near edge first
type Quad struct {
	Points [4]Vec2
	Color  color.RGBA
	Layer  Layer
}

// Silhouette places the car sprite on screen
type Silhouette struct {
	X, Y      float64 // Bottom centre of the car in pixels
	Width     float64 // Car width in pixels
	Rotation  float64 // Radians, positive leans right
	Vibration float64 // Shake amplitude in pixels
	Crashed   bool
}

// DrawList is everything needed to paint one frame of the road
type DrawList struct {
	Quads   []Quad
	Car     Silhouette
	Horizon float64 // Screen Y of the farthest projected segment
}

// PathPoint is a visible segment's running lateral offset
type PathPoint struct {
	Z      float64
	Offset float64
}

// Scene is the read-only simulation state a frame is built from
type Scene struct {
	Vehicle  vehicle.State
	Viewport Viewport
}

// Palette holds the band colours
type Palette struct {
	Shoulder [2]color.RGBA
	Kerb     [2]color.RGBA
	Road     [2]color.RGBA
	Apex     color.RGBA
	Trail    color.RGBA
}

// DefaultPalette is the night-drive look
var DefaultPalette = Palette{
	Shoulder: [2]color.RGBA{{16, 24, 48, 255}, {22, 32, 60, 255}},
	Kerb:     [2]color.RGBA{{230, 230, 240, 255}, {200, 40, 60, 255}},
	Road:     [2]color.RGBA{{52, 52, 64, 255}, {46, 46, 58, 255}},
	Apex:     color.RGBA{255, 200, 40, 255},
	Trail:    color.RGBA{80, 240, 255, 255},
}

const (
	carWidthWorld = 700.0
	maxTilt       = 0.3 // Radians of sprite tilt at full lean
)

// Renderer turns a segment window and the vehicle state into a draw list
type Renderer struct {
	tuning    config.RenderTuning
	collision float64
	palette   Palette
}

// NewRenderer creates a renderer. collisionThreshold sets the shoulder width.
func NewRenderer(tuning config.RenderTuning, collisionThreshold float64) *Renderer {
	return &Renderer{
		tuning:    tuning,
		collision: collisionThreshold,
		palette:   DefaultPalette,
	}
}

// Camera returns the eye used for a vehicle state. It sits behind the car
// and follows part of its lateral offset.
func (r *Renderer) Camera(s vehicle.State) Camera {
	t := r.tuning
	return Camera{
		X:        s.LateralOffset * t.RoadHalfWidth * t.CameraFollow,
		Y:        t.CameraHeight,
		Z:        s.Distance - r.playerZ(),
		Depth:    t.CameraDepth,
		MinDepth: t.MinDepth,
	}
}

// playerZ is how far ahead of the camera the car sits
func (r *Renderer) playerZ() float64 {
	return r.tuning.CameraHeight * r.tuning.CameraDepth
}

// Path accumulates curvature into a running lateral offset for every segment
// at least the minimum depth ahead of the camera. Curvature integrates twice,
// so the road bends under a camera that always looks straight ahead.
func (r *Renderer) Path(window []road.RoadSegment, camZ float64) []PathPoint {
	var path []PathPoint
	offset, dOffset := 0.0, 0.0
	for _, seg := range window {
		if seg.Z-camZ < r.tuning.MinDepth {
			continue
		}
		if len(path) >= r.tuning.DrawSegments {
			break
		}
		path = append(path, PathPoint{Z: seg.Z, Offset: offset})
		offset += dOffset
		dOffset += seg.Curvature
	}
	return path
}

// Build projects the window and emits quads back to front. An empty window
// yields an empty draw list.
func (r *Renderer) Build(window []road.RoadSegment, scene Scene) DrawList {
	var dl DrawList
	vp := scene.Viewport
	cam := r.Camera(scene.Vehicle)

	path := r.Path(window, cam.Z)
	if len(path) < 2 {
		return dl
	}

	// Index the visible segments so parity and highlights follow the path
	visible := make([]road.RoadSegment, 0, len(path))
	for _, seg := range window {
		if seg.Z-cam.Z >= r.tuning.MinDepth {
			visible = append(visible, seg)
		}
		if len(visible) == len(path) {
			break
		}
	}

	proj := make([]Projection, len(path))
	for i, p := range path {
		proj[i] = Project(Point3{X: p.Offset, Y: 0, Z: p.Z}, cam, vp, r.tuning.RoadHalfWidth)
	}
	dl.Horizon = proj[len(proj)-1].ScreenY

	// Farthest pair first
	for i := len(path) - 2; i >= 0; i-- {
		near, far := proj[i], proj[i+1]
		if far.ScreenY >= near.ScreenY {
			// Hidden behind a crest or degenerate
			continue
		}
		r.emitSegment(&dl, near, far, visible[i])
	}

	r.emitTrail(&dl, scene.Vehicle.Trail, path, cam, vp)
	dl.Car = r.silhouette(scene.Vehicle, cam, vp)
	return dl
}

func (r *Renderer) emitSegment(dl *DrawList, near, far Projection, seg road.RoadSegment) {
	parity := int(seg.Index & 1)
	p := r.palette

	shoulder := r.collision
	dl.Quads = append(dl.Quads, band(near, far, -shoulder, shoulder, p.Shoulder[parity], LayerShoulder))

	kerb := p.Kerb[parity]
	if seg.Highlight == road.HighlightApex {
		kerb = p.Apex
	}
	k := r.tuning.KerbScale
	dl.Quads = append(dl.Quads,
		band(near, far, -k, -1, kerb, LayerKerb),
		band(near, far, 1, k, kerb, LayerKerb),
		band(near, far, -1, 1, p.Road[parity], LayerRoad),
	)
}

// band spans a strip between two lateral positions measured in road half-widths
func band(near, far Projection, from, to float64, c color.RGBA, layer Layer) Quad {
	return Quad{
		Points: [4]Vec2{
			{float32(near.ScreenX + from*near.HalfWidth), float32(near.ScreenY)},
			{float32(near.ScreenX + to*near.HalfWidth), float32(near.ScreenY)},
			{float32(far.ScreenX + to*far.HalfWidth), float32(far.ScreenY)},
			{float32(far.ScreenX + from*far.HalfWidth), float32(far.ScreenY)},
		},
		Color: c,
		Layer: layer,
	}
}

// TrailLateral places a trail point on the current road shape. The point's
// offset is relative to the centreline at its z, so it is added to the
// running offset of the visible segment nearest that z. ok is false when the
// path is empty.
func TrailLateral(p vehicle.TrailPoint, path []PathPoint, roadHalfWidth float64) (float64, bool) {
	if len(path) == 0 {
		return 0, false
	}
	i := sort.Search(len(path), func(i int) bool { return path[i].Z >= p.Z })
	switch {
	case i == len(path):
		i--
	case i > 0 && p.Z-path[i-1].Z < path[i].Z-p.Z:
		i--
	}
	return path[i].Offset + p.Offset*roadHalfWidth, true
}

// emitTrail draws the ribbon between consecutive trail points ahead of the camera
func (r *Renderer) emitTrail(dl *DrawList, trail []vehicle.TrailPoint, path []PathPoint, cam Camera, vp Viewport) {
	t := r.tuning
	type sample struct {
		proj  Projection
		alpha float64
	}
	var samples []sample
	for _, p := range trail {
		if p.Z-cam.Z < t.MinDepth {
			continue
		}
		x, ok := TrailLateral(p, path, t.RoadHalfWidth)
		if !ok {
			return
		}
		samples = append(samples, sample{
			proj:  Project(Point3{X: x, Y: 0, Z: p.Z}, cam, vp, t.RoadHalfWidth),
			alpha: p.Alpha,
		})
	}

	// Trail is recorded oldest first, which is also farthest from the camera
	glow := t.TrailWidth * t.TrailGlowScale
	for i := 0; i+1 < len(samples); i++ {
		far, near := samples[i], samples[i+1]
		alpha := math.Min(far.alpha, near.alpha)
		dl.Quads = append(dl.Quads,
			ribbon(near.proj, far.proj, glow, fade(r.palette.Trail, alpha*0.35), LayerTrailGlow),
			ribbon(near.proj, far.proj, t.TrailWidth, fade(r.palette.Trail, alpha), LayerTrail),
		)
	}
}

// ribbon is a band of the given half-width centred on each projection
func ribbon(near, far Projection, halfWidth float64, c color.RGBA, layer Layer) Quad {
	return band(near, far, -halfWidth, halfWidth, c, layer)
}

// fade scales a colour's alpha, premultiplied the way ebiten expects
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(alpha, 1))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func (r *Renderer) silhouette(s vehicle.State, cam Camera, vp Viewport) Silhouette {
	t := r.tuning
	world := Point3{
		X: s.LateralOffset * t.RoadHalfWidth,
		Y: 0,
		Z: s.Distance,
	}
	sil := Silhouette{
		Rotation:  s.Lean * maxTilt,
		Vibration: s.Vibration,
	}
	if s.Crash != nil {
		world.X += s.Crash.X
		world.Y += math.Max(s.Crash.Y, 0)
		sil.Rotation = s.Crash.Rotation
		sil.Vibration = 0
		sil.Crashed = true
	}

	p := Project(world, cam, vp, t.RoadHalfWidth)
	sil.X = p.ScreenX
	sil.Y = p.ScreenY
	sil.Width = p.Scale * carWidthWorld * vp.W / 2
	return sil
}
