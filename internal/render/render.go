// Package render defines the drawing surface the engine targets and an
// offscreen software canvas implementing it.
package render

import (
	"log"
	"sync"

	"github.com/olivierh59500/particle-links/internal/links"
	"github.com/olivierh59500/particle-links/internal/palette"
)

// CompositeSourceOver is the default composite operation
const CompositeSourceOver = "source-over"

// Surface is everything the engine draws with
type Surface interface {
	links.Context
	// Clear fills the whole surface and resets the composite operation
	Clear(bg palette.Style)
	FillCircle(x, y, radius float64, s palette.Style)
}

var (
	warnedMu sync.Mutex
	warned   = map[string]bool{}
)

// WarnOnce logs msg the first time it is seen
func WarnOnce(msg string) {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	if warned[msg] {
		return
	}
	warned[msg] = true
	log.Print(msg)
}

var _ Surface = (*Canvas)(nil)
