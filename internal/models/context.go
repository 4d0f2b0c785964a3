package models

// Depth cap bounds. Requests above MaxDepthCap are clamped, never honored.
const (
	DefaultDepthCap = 4
	MaxDepthCap     = 8
)

// PolicyOptions is the mutable input to FreezePolicy.
type PolicyOptions struct {
	Strict             bool
	EvidenceMode       EvidenceMode
	DepthCap           int
	BlockOnHighAnomaly bool
	Pepper             string
}

// PolicyContext is the per-evaluation configuration, immutable after
// FreezePolicy returns. There is deliberately no setter: the freeze
// invariant is enforced by construction.
type PolicyContext struct {
	strict             bool
	evidenceMode       EvidenceMode
	depthCap           int
	blockOnHighAnomaly bool
	pepper             string
}

// FreezePolicy validates options and returns an immutable context.
// Configuration errors degrade safely: an unknown evidence mode or a
// peppered request without a pepper falls back to nonce mode, and an
// out-of-range depth cap is clamped rather than rejected.
func FreezePolicy(o PolicyOptions) *PolicyContext {
	mode := o.EvidenceMode
	switch mode {
	case EvidenceModeNonce, EvidenceModePeppered:
	default:
		mode = EvidenceModeNonce
	}
	if mode == EvidenceModePeppered && (o.Strict || o.Pepper == "") {
		mode = EvidenceModeNonce
	}

	cap := o.DepthCap
	if cap <= 0 {
		cap = DefaultDepthCap
	}
	if cap > MaxDepthCap {
		cap = MaxDepthCap
	}

	return &PolicyContext{
		strict:             o.Strict,
		evidenceMode:       mode,
		depthCap:           cap,
		blockOnHighAnomaly: o.BlockOnHighAnomaly,
		pepper:             o.Pepper,
	}
}

func (p *PolicyContext) Strict() bool               { return p.strict }
func (p *PolicyContext) EvidenceMode() EvidenceMode { return p.evidenceMode }
func (p *PolicyContext) DepthCap() int              { return p.depthCap }
func (p *PolicyContext) BlockOnHighAnomaly() bool   { return p.blockOnHighAnomaly }
func (p *PolicyContext) Pepper() string             { return p.pepper }
