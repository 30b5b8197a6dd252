// Package viewport owns the camera transform between graph space and
// screen space. Rendering and hit testing share the same affine
// transform so coordinates always agree.
package viewport

import (
	"netviz/domain/config"
)

// Transform is the camera state: pixel pan offset plus zoom scale.
// screen = graph*Scale + Pan + surface center.
type Transform struct {
	PanX  float64 `json:"pan_x"`
	PanY  float64 `json:"pan_y"`
	Scale float64 `json:"scale"`
}

// Controller owns and mutates the viewport transform. All mutation
// goes through its methods; everything else reads snapshots.
type Controller struct {
	cfg       config.ViewportTuning
	transform Transform
}

// NewController creates a controller at the identity transform
func NewController(cfg config.ViewportTuning) *Controller {
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Reset returns the camera to the identity transform
func (c *Controller) Reset() {
	c.transform = Transform{PanX: 0, PanY: 0, Scale: 1}
}

// Transform returns the current camera snapshot
func (c *Controller) Transform() Transform {
	return c.transform
}

// SurfaceSize returns the rendering surface dimensions in pixels
func (c *Controller) SurfaceSize() (w, h float64) {
	return c.cfg.SurfaceWidth, c.cfg.SurfaceHeight
}

func (c *Controller) center() (cx, cy float64) {
	return c.cfg.SurfaceWidth / 2, c.cfg.SurfaceHeight / 2
}

// PanBy shifts the camera by a pixel delta. Panning is unbounded;
// the user can always drag back.
func (c *Controller) PanBy(dx, dy float64) {
	c.transform.PanX += dx
	c.transform.PanY += dy
}

// ZoomAt rescales about a pointer position, keeping the graph-space
// point currently under the pointer fixed on screen.
func (c *Controller) ZoomAt(pointerX, pointerY, factor float64) {
	newScale := c.clampScale(c.transform.Scale * factor)
	if newScale == c.transform.Scale {
		return
	}

	// Invert the old transform at the pointer, then solve the pan
	// that maps that graph point back to the pointer at the new scale.
	gx, gy := c.ScreenToGraph(pointerX, pointerY)
	cx, cy := c.center()

	c.transform.Scale = newScale
	c.transform.PanX = pointerX - gx*newScale - cx
	c.transform.PanY = pointerY - gy*newScale - cy
}

// ZoomStep applies the configured multiplicative zoom about the
// viewport center; direction > 0 zooms in, otherwise out.
func (c *Controller) ZoomStep(direction int) {
	factor := c.cfg.ZoomStepFactor
	if direction < 0 {
		factor = 1 / factor
	}
	cx, cy := c.center()
	c.ZoomAt(cx, cy, factor)
}

// ScreenToGraph inverts the camera transform for a screen point
func (c *Controller) ScreenToGraph(sx, sy float64) (gx, gy float64) {
	cx, cy := c.center()
	gx = (sx - c.transform.PanX - cx) / c.transform.Scale
	gy = (sy - c.transform.PanY - cy) / c.transform.Scale
	return gx, gy
}

// GraphToScreen applies the camera transform to a graph point
func (c *Controller) GraphToScreen(gx, gy float64) (sx, sy float64) {
	cx, cy := c.center()
	sx = gx*c.transform.Scale + c.transform.PanX + cx
	sy = gy*c.transform.Scale + c.transform.PanY + cy
	return sx, sy
}

func (c *Controller) clampScale(s float64) float64 {
	if s < c.cfg.MinScale {
		return c.cfg.MinScale
	}
	if s > c.cfg.MaxScale {
		return c.cfg.MaxScale
	}
	return s
}
