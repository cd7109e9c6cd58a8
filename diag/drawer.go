package diag

import "github.com/go-gl/mathgl/mgl64"

// Color is an RGBA colour in [0, 1]
type Color [4]float32

var (
	ColorRed     = Color{1, 0, 0, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorBlue    = Color{0, 0, 1, 1}
	ColorOrange  = Color{1, 0.5, 0, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorGrey    = Color{0.5, 0.5, 0.5, 1}
)

// Drawer receives debug geometry in world space. Nothing in the module depends on
// what an implementation does with it.
type Drawer interface {
	DrawLine(from, to mgl64.Vec3, color Color)
	DrawPoint(position mgl64.Vec3, color Color)
	DrawPolygon(vertices []mgl64.Vec3, color Color)
}

// NopDrawer discards everything
type NopDrawer struct{}

func (NopDrawer) DrawLine(from, to mgl64.Vec3, color Color)      {}
func (NopDrawer) DrawPoint(position mgl64.Vec3, color Color)     {}
func (NopDrawer) DrawPolygon(vertices []mgl64.Vec3, color Color) {}

// Recorder keeps every call, mostly useful in tests and offline inspection
type Recorder struct {
	Lines    [][2]mgl64.Vec3
	Points   []mgl64.Vec3
	Polygons [][]mgl64.Vec3
}

func (r *Recorder) DrawLine(from, to mgl64.Vec3, color Color) {
	r.Lines = append(r.Lines, [2]mgl64.Vec3{from, to})
}

func (r *Recorder) DrawPoint(position mgl64.Vec3, color Color) {
	r.Points = append(r.Points, position)
}

func (r *Recorder) DrawPolygon(vertices []mgl64.Vec3, color Color) {
	r.Polygons = append(r.Polygons, append([]mgl64.Vec3(nil), vertices...))
}
