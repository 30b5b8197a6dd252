package layout

import "math"

// Force passes are independent functions over the shared simulation
// buffers, applied in sequence each tick. Keeping them as plain
// methods keeps the hot loop allocation-free.

// applyLinkForce pulls connected pairs toward the target separation
// with bounded strength, weaker than a rigid constraint so dense
// clusters can compress.
func (s *simulation) applyLinkForce(alpha float64) {
	for _, e := range s.edges {
		a, b := e[0], e[1]
		dx, dy, dist := s.separation(a, b)

		delta := (dist - s.cfg.LinkDistance) / dist * s.cfg.LinkStrength * alpha
		fx := dx * delta
		fy := dy * delta

		s.vx[a] += fx / 2
		s.vy[a] += fy / 2
		s.vx[b] -= fx / 2
		s.vy[b] -= fy / 2
	}
}

// applyRepulsion pushes every node pair apart with inverse-distance
// scaled strength so the graph spreads instead of collapsing.
func (s *simulation) applyRepulsion(alpha float64) {
	for i := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			dx, dy, dist := s.separation(i, j)

			// Distance floor keeps near-coincident pairs from exploding
			d := dist
			if d < 1 {
				d = 1
			}
			mag := -s.cfg.RepulsionStrength * alpha / (d * d)

			fx := dx / dist * mag
			fy := dy / dist * mag

			s.vx[i] -= fx
			s.vy[i] -= fy
			s.vx[j] += fx
			s.vy[j] += fy
		}
	}
}

// applyCentering nudges the whole system toward the origin so the
// graph does not drift off-screen as iterations accumulate.
func (s *simulation) applyCentering() {
	if len(s.nodes) == 0 {
		return
	}

	var cx, cy float64
	for i := range s.nodes {
		cx += s.px[i]
		cy += s.py[i]
	}
	cx = cx / float64(len(s.nodes)) * s.cfg.CenterStrength
	cy = cy / float64(len(s.nodes)) * s.cfg.CenterStrength

	for i := range s.nodes {
		s.px[i] -= cx
		s.py[i] -= cy
	}
}

// applyCollision treats each node as a disc of rendered radius plus
// padding and pushes overlapping discs apart symmetrically.
func (s *simulation) applyCollision() {
	for i := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			dx, dy, dist := s.separation(i, j)

			minDist := s.radius[i] + s.radius[j] + s.cfg.CollidePadding
			overlap := minDist - dist
			if overlap <= 0 {
				continue
			}

			push := overlap / 2 * s.cfg.CollideStrength
			ux := dx / dist
			uy := dy / dist

			s.px[i] -= ux * push
			s.py[i] -= uy * push
			s.px[j] += ux * push
			s.py[j] += uy * push
		}
	}
}

// separation returns the vector from i to j and its length, guarded
// against coincident points with a deterministic index-based fallback
// direction so distance-based math never divides by zero.
func (s *simulation) separation(i, j int) (dx, dy, dist float64) {
	dx = s.px[j] - s.px[i]
	dy = s.py[j] - s.py[i]
	dist = math.Hypot(dx, dy)
	if dist >= s.cfg.MinDistance {
		return dx, dy, dist
	}

	angle := 2 * math.Pi * float64(i*31+j) / float64(len(s.nodes)+1)
	dx = math.Cos(angle) * s.cfg.MinDistance
	dy = math.Sin(angle) * s.cfg.MinDistance
	return dx, dy, s.cfg.MinDistance
}
