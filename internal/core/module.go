package core

// ModuleID uniquely identifies a module. IDs are namespaced with dots,
// e.g. "backend.botapi" or "gateway.http".
type ModuleID string

// ModuleInfo describes a registered module type.
type ModuleInfo struct {
	// ID is the unique module identifier.
	ID ModuleID

	// New returns a fresh, unconfigured instance of the module.
	New func() Module
}

// Module is the minimal interface every peerlens module implements.
// Modules opt into lifecycle phases by additionally implementing the
// interfaces in lifecycle.go.
type Module interface {
	ModuleInfo() ModuleInfo
}
