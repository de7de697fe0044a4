package handlers

import (
	"github.com/pulsecrm-dev/pulsecrm/internal/deadline"
	"github.com/pulsecrm-dev/pulsecrm/internal/store"
)

// Package-level collaborators, set once from main before the router starts.
var (
	engine *deadline.Engine
	viewer *deadline.Viewer
	crm    *store.Store
)

func Configure(e *deadline.Engine, v *deadline.Viewer, s *store.Store) {
	engine = e
	viewer = v
	crm = s
}
