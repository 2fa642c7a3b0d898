package effects

// Effect kinds reported by the per-piece parameter variants.
const (
	KindTornado = "tornado"
	KindLeaf    = "leaf"
)

// TornadoParams is a piece's state in the tornado effect.
type TornadoParams struct {
	// AxisX is the screen x of the vertical axis the piece circles.
	AxisX float32
	// Spin is the total turn in degrees at the end of the piece's move.
	Spin float32
	// Lift is the total rise in pixels; negative is up.
	Lift float32

	// Angle and Rise are the current turn and rise.
	Angle float32
	Rise  float32
}

func (*TornadoParams) EffectKind() string { return KindTornado }

// LeafParams is a piece's sideways flutter in the leaf spread effect.
type LeafParams struct {
	Amplitude float32
	Phase     float32
	// Offset is the current flutter in pixels.
	Offset float32
}

func (*LeafParams) EffectKind() string { return KindLeaf }
