package engine

import (
	"time"

	"github.com/lixenwraith/glyphrain/render"
)

// Animator is one self-contained animation engine driven by the
// controller. Each animator owns its surface exclusively.
type Animator interface {
	// Layout resizes the animator's surface to the given cell dimensions
	// and re-derives element bounds; live elements are repositioned rather
	// than discarded where feasible
	Layout(width, height int)

	// Update advances simulation state by the elapsed frame time
	Update(dt time.Duration)

	// Draw paints the current state onto the animator's own surface
	Draw()

	// Surface returns the buffer the animator paints
	Surface() *render.Buffer
}
