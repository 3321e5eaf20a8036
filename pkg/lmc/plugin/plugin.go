// Package plugin binds the LMC modes to a host workspace.
//
// Loading happens in two phases. The modes are registered right away, so that
// documents opened from then on pick them up. Documents that were already
// open are refreshed once the workspace reports that it is ready.
package plugin

import (
	"sync"

	"src.lmc.sh/pkg/lmc/mode"
	"src.lmc.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[plugin] ")

// DefaultOwner is the owner used for registry entries when Plugin.Owner is
// empty.
const DefaultOwner = "lmc"

// View is an open document in the host.
type View interface {
	// Mode returns the name of the mode the view is bound to.
	Mode() string
	// SetMode binds the view to a mode, causing the host to resolve the mode
	// again and re-highlight the view.
	SetMode(name string)
}

// Workspace is the host's collection of open views.
type Workspace interface {
	Views() []View
	// OnReady arranges for f to be called once the workspace is ready. If it
	// is ready already, f may be called immediately.
	OnReady(f func())
}

// Plugin installs the LMC modes into Registry and keeps the views of
// Workspace in sync with them.
type Plugin struct {
	Registry  *mode.Registry
	Workspace Workspace
	Owner     string

	mu     sync.Mutex
	loaded bool
}

func (p *Plugin) owner() string {
	if p.Owner == "" {
		return DefaultOwner
	}
	return p.Owner
}

// Load registers the LMC modes and schedules a refresh of the workspace. It
// does nothing if the plugin is already loaded.
func (p *Plugin) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}
	if err := mode.RegisterLMC(p.Registry, p.owner()); err != nil {
		mode.UnregisterLMC(p.Registry, p.owner())
		return err
	}
	p.loaded = true
	logger.Printf("registered modes %v as %q", mode.LMCNames, p.owner())
	if p.Workspace != nil {
		p.Workspace.OnReady(p.Refresh)
	}
	return nil
}

// Unload removes the registry entries installed by Load and refreshes the
// workspace. It does nothing if the plugin is not loaded.
func (p *Plugin) Unload() {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return
	}
	mode.UnregisterLMC(p.Registry, p.owner())
	p.loaded = false
	p.mu.Unlock()
	logger.Printf("unregistered modes as %q", p.owner())
	p.Refresh()
}

// Loaded reports whether the plugin is loaded.
func (p *Plugin) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Refresh rebinds every view of the workspace to its current mode.
func (p *Plugin) Refresh() {
	if p.Workspace == nil {
		return
	}
	views := p.Workspace.Views()
	for _, v := range views {
		v.SetMode(v.Mode())
	}
	logger.Printf("refreshed %d views", len(views))
}
