package uiexpr

import "io"

// Option configures an Engine at construction.
type Option interface {
	engineOption(*Engine)
}

type (
	outopt   struct{ w io.Writer }
	constopt struct {
		name string
		val  float64
	}
)

// WithOutput sets the writer that receives print output. The default
// discards it; the hosting application decides where printed values
// surface.
func WithOutput(w io.Writer) Option {
	return outopt{w}
}

func (o outopt) engineOption(e *Engine) {
	e.out = o.w
}

// WithConstant seeds an additional named constant. Constants are fixed
// for the lifetime of the engine; a WithConstant that reuses a seeded
// name replaces it.
func WithConstant(name string, val float64) Option {
	return constopt{name, val}
}

func (o constopt) engineOption(e *Engine) {
	e.syms.setConstant(o.name, o.val)
}
