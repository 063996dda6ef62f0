package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// ErrMissingTemplate is returned when an entity template is not configured.
var ErrMissingTemplate = errors.New("sim: missing template")

// Handle references a spawned entity.
type Handle uint64

// NoHandle is the zero handle; no spawned entity ever uses it.
const NoHandle Handle = 0

// Spawner instantiates and removes entities from named templates.
type Spawner interface {
	Spawn(template string, at core.Vec2) (Handle, error)
	Despawn(h Handle)
}

// Entity is one live instance tracked by an EntityPool.
type Entity struct {
	Template string
	Position core.Vec2
}

// EntityPool is an in-memory Spawner that only knows registered templates.
type EntityPool struct {
	templates map[string]bool
	live      map[Handle]Entity
	next      Handle
}

// NewEntityPool creates a pool that accepts the given templates.
func NewEntityPool(templates ...string) *EntityPool {
	p := &EntityPool{
		templates: make(map[string]bool),
		live:      make(map[Handle]Entity),
	}
	for _, t := range templates {
		p.Register(t)
	}
	return p
}

// Register adds a template name. Empty names are ignored.
func (p *EntityPool) Register(template string) {
	if template == "" {
		return
	}
	p.templates[template] = true
}

// Spawn creates an entity from template.
func (p *EntityPool) Spawn(template string, at core.Vec2) (Handle, error) {
	if !p.templates[template] {
		return NoHandle, fmt.Errorf("spawn %q: %w", template, ErrMissingTemplate)
	}
	p.next++
	p.live[p.next] = Entity{Template: template, Position: at}
	return p.next, nil
}

// Despawn removes an entity. Unknown handles are ignored.
func (p *EntityPool) Despawn(h Handle) {
	delete(p.live, h)
}

// Live returns the number of spawned entities.
func (p *EntityPool) Live() int {
	return len(p.live)
}
