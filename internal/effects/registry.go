package effects

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Faultbox/polyfx/internal/config"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Factory constructs an effect from the effects configuration.
type Factory func(config.EffectsConfig) Effect

// Register associates an effect name with a factory. It panics on
// duplicate names.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("effects: duplicate registration for " + name)
	}
	registry[name] = factory
}

// Lookup fetches a factory by name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New builds the named effect.
func New(name string, cfg config.EffectsConfig) (Effect, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return f(cfg), nil
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("blinds", func(cfg config.EffectsConfig) Effect { return &Blinds{cfg: cfg.Blinds} })
	Register("helix", func(cfg config.EffectsConfig) Effect { return &Helix{cfg: cfg.Helix} })
	Register("shatter", func(cfg config.EffectsConfig) Effect { return &Shatter{cfg: cfg.Shatter} })
	Register("explode", func(cfg config.EffectsConfig) Effect { return &Explode{cfg: cfg.Explode} })
	Register("leafspread", func(cfg config.EffectsConfig) Effect { return &LeafSpread{cfg: cfg.LeafSpread} })
	Register("domino", func(cfg config.EffectsConfig) Effect {
		return &Domino{dir: parseDirection(cfg.Domino.Direction)}
	})
	Register("razr", func(cfg config.EffectsConfig) Effect {
		return &Domino{dir: parseDirection(cfg.Razr.Direction), razr: true}
	})
	Register("glide1", func(cfg config.EffectsConfig) Effect { return &Glide{name: "glide1", cfg: cfg.Glide1} })
	Register("glide2", func(cfg config.EffectsConfig) Effect { return &Glide{name: "glide2", cfg: cfg.Glide2} })
	Register("tornado", func(cfg config.EffectsConfig) Effect { return &Tornado{cfg: cfg.Tornado} })
}
