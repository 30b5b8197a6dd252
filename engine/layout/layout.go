// Package layout converts the graph model into 2D positions with an
// iterative force simulation. The simulation is deterministic: initial
// placement is a fixed ring, there is no randomness, and the tick
// count is fixed, so the same graph always lays out the same way.
package layout

import (
	"math"
	"time"

	"go.uber.org/zap"

	"netviz/domain/config"
	"netviz/domain/graph"
	"netviz/engine/style"
)

// PositionedNode is a graph node with its computed graph-space
// coordinates. Instances are created fresh on every load and never
// mutated after the simulation finishes.
type PositionedNode struct {
	graph.Node
	X float64
	Y float64
}

// Engine runs the force simulation
type Engine struct {
	cfg    config.LayoutTuning
	styles *style.Mapper
	logger *zap.Logger
}

// NewEngine creates a layout engine
func NewEngine(cfg config.LayoutTuning, styles *style.Mapper, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		styles: styles,
		logger: logger,
	}
}

// Compute lays out the graph and returns the finished snapshot.
// It runs the fixed iteration count synchronously to completion;
// nothing animates, the result is static until the next load.
func (e *Engine) Compute(g *graph.Graph) []PositionedNode {
	if g.IsEmpty() {
		return nil
	}

	start := time.Now()
	s := newSimulation(g, e.cfg, e.styles)

	for iter := 0; iter < e.cfg.Iterations; iter++ {
		// Linear cooling keeps late ticks from oscillating
		alpha := 1.0 - float64(iter)/float64(e.cfg.Iterations)
		s.tick(alpha)
	}

	out := make([]PositionedNode, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = PositionedNode{Node: n, X: s.px[i], Y: s.py[i]}
	}

	e.logger.Debug("layout computed",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("iterations", e.cfg.Iterations),
		zap.Duration("duration", time.Since(start)),
	)

	return out
}

// simulation holds the transient mutable buffers of a single layout
// run. This is the only place position-in-progress state lives;
// everything downstream consumes the immutable PositionedNode slice.
type simulation struct {
	cfg   config.LayoutTuning
	nodes []graph.Node
	edges [][2]int

	px, py []float64
	vx, vy []float64
	radius []float64
}

func newSimulation(g *graph.Graph, cfg config.LayoutTuning, styles *style.Mapper) *simulation {
	nodes := g.Nodes()
	s := &simulation{
		cfg:    cfg,
		nodes:  nodes,
		px:     make([]float64, len(nodes)),
		py:     make([]float64, len(nodes)),
		vx:     make([]float64, len(nodes)),
		vy:     make([]float64, len(nodes)),
		radius: make([]float64, len(nodes)),
	}

	index := make(map[graph.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		s.radius[i] = styles.RadiusOf(n)
	}

	for _, e := range g.Edges() {
		s.edges = append(s.edges, [2]int{index[e.SourceID], index[e.TargetID]})
	}

	s.placeInitial()
	return s
}

// placeInitial puts the self node at the origin and spreads the rest
// on a fixed ring. No two starting points coincide, and the radial
// symmetry biases the settled layout toward a readable spread.
func (s *simulation) placeInitial() {
	others := 0
	for _, n := range s.nodes {
		if !n.IsSelf() {
			others++
		}
	}

	k := 0
	for i, n := range s.nodes {
		if n.IsSelf() {
			s.px[i], s.py[i] = 0, 0
			continue
		}
		angle := 2 * math.Pi * float64(k) / float64(others)
		s.px[i] = s.cfg.InitialRingRadius * math.Cos(angle)
		s.py[i] = s.cfg.InitialRingRadius * math.Sin(angle)
		k++
	}
}

// tick applies each force pass in sequence, then integrates with
// semi-implicit Euler: forces change velocity, velocity changes
// position, then velocity decays.
func (s *simulation) tick(alpha float64) {
	s.applyLinkForce(alpha)
	s.applyRepulsion(alpha)
	s.applyCentering()

	for i := range s.nodes {
		s.px[i] += s.vx[i]
		s.py[i] += s.vy[i]
		s.vx[i] *= s.cfg.VelocityDecay
		s.vy[i] *= s.cfg.VelocityDecay
	}

	// Collision resolves residual overlap in position space so discs
	// actually separate instead of oscillating around each other.
	s.applyCollision()
}
