package config

// Tuning holds every empirically tuned constant of the visualization
// engine. The defaults were calibrated for typical contact graphs
// (tens to low hundreds of nodes); treat them as knobs, not invariants.
type Tuning struct {
	Layout   LayoutTuning   `yaml:"layout"`
	Style    StyleTuning    `yaml:"style"`
	Viewport ViewportTuning `yaml:"viewport"`
}

// LayoutTuning configures the force simulation
type LayoutTuning struct {
	// Iterations is the fixed tick count; the simulation runs to
	// completion before the first paint.
	Iterations int `yaml:"iterations"`

	// InitialRingRadius places non-self nodes on a circle of this
	// radius around the self node at the origin.
	InitialRingRadius float64 `yaml:"initial_ring_radius"`

	// LinkDistance is the target separation of connected pairs.
	LinkDistance float64 `yaml:"link_distance"`

	// LinkStrength bounds how hard links pull; below 1 so dense
	// clusters can still compress.
	LinkStrength float64 `yaml:"link_strength"`

	// RepulsionStrength is the many-body charge; negative repels.
	RepulsionStrength float64 `yaml:"repulsion_strength"`

	// CenterStrength pulls the whole system toward the origin.
	CenterStrength float64 `yaml:"center_strength"`

	// CollidePadding widens each node's collision disc beyond its
	// rendered radius.
	CollidePadding float64 `yaml:"collide_padding"`

	// CollideStrength scales how hard overlapping discs push apart.
	CollideStrength float64 `yaml:"collide_strength"`

	// VelocityDecay damps velocity after each integration step.
	VelocityDecay float64 `yaml:"velocity_decay"`

	// MinDistance guards distance-based forces against divide-by-zero.
	MinDistance float64 `yaml:"min_distance"`
}

// StyleTuning configures the geometry/style mapper and renderer
type StyleTuning struct {
	SelfRadius  float64 `yaml:"self_radius"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	RadiusBase  float64 `yaml:"radius_base"`
	RadiusScale float64 `yaml:"radius_scale"`

	SelfColor    string   `yaml:"self_color"`
	NeutralColor string   `yaml:"neutral_color"`
	Palette      []string `yaml:"palette"`

	EdgeColor      string  `yaml:"edge_color"`
	EmphasisColor  string  `yaml:"emphasis_color"`
	MinEdgeWidth   float64 `yaml:"min_edge_width"`
	MaxEdgeWidth   float64 `yaml:"max_edge_width"`
	MinEdgeOpacity float64 `yaml:"min_edge_opacity"`
	MaxEdgeOpacity float64 `yaml:"max_edge_opacity"`

	// DimOpacity is applied to everything unrelated to the selection.
	DimOpacity      float64 `yaml:"dim_opacity"`
	EmphasisOpacity float64 `yaml:"emphasis_opacity"`

	LabelColor string  `yaml:"label_color"`
	FontSize   float64 `yaml:"font_size"`

	Background  string  `yaml:"background"`
	ShowGrid    bool    `yaml:"show_grid"`
	GridSpacing float64 `yaml:"grid_spacing"`
	GridColor   string  `yaml:"grid_color"`
}

// ViewportTuning configures the camera and rendering surface
type ViewportTuning struct {
	SurfaceWidth  float64 `yaml:"surface_width"`
	SurfaceHeight float64 `yaml:"surface_height"`

	MinScale       float64 `yaml:"min_scale"`
	MaxScale       float64 `yaml:"max_scale"`
	ZoomStepFactor float64 `yaml:"zoom_step_factor"`
}

// DefaultTuning returns the compiled-in defaults
func DefaultTuning() *Tuning {
	return &Tuning{
		Layout: LayoutTuning{
			Iterations:        300,
			InitialRingRadius: 200,
			LinkDistance:      120,
			LinkStrength:      0.3,
			RepulsionStrength: -300,
			CenterStrength:    0.05,
			CollidePadding:    8,
			CollideStrength:   0.7,
			VelocityDecay:     0.6,
			MinDistance:       1e-6,
		},
		Style: StyleTuning{
			SelfRadius:  24,
			MinRadius:   8,
			MaxRadius:   18,
			RadiusBase:  6,
			RadiusScale: 2.5,

			SelfColor:    "#f59e0b",
			NeutralColor: "#64748b",
			Palette: []string{
				"#3b82f6",
				"#10b981",
				"#8b5cf6",
				"#ec4899",
				"#14b8a6",
				"#f97316",
				"#6366f1",
				"#84cc16",
			},

			EdgeColor:      "#94a3b8",
			EmphasisColor:  "#f59e0b",
			MinEdgeWidth:   1,
			MaxEdgeWidth:   6,
			MinEdgeOpacity: 0.25,
			MaxEdgeOpacity: 0.9,

			DimOpacity:      0.15,
			EmphasisOpacity: 1.0,

			LabelColor: "#e2e8f0",
			FontSize:   12,

			Background:  "#0f172a",
			ShowGrid:    true,
			GridSpacing: 40,
			GridColor:   "#1e293b",
		},
		Viewport: ViewportTuning{
			SurfaceWidth:  960,
			SurfaceHeight: 600,

			MinScale:       0.2,
			MaxScale:       4.0,
			ZoomStepFactor: 1.25,
		},
	}
}
