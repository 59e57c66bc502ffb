// Package server implements the archpad HTTP API.
//
// The API serves the palette catalog and tool descriptions to the canvas
// frontend, persists named designs through a [store.Store] backend, and
// offers diagram validation and Graphviz rendering as stateless operations.
//
// # Routes
//
// All routes are mounted under /api:
//
//	GET    /api/health              liveness and version
//	GET    /api/catalog             palette taxonomy
//	GET    /api/descriptions        tool description lookup
//	GET    /api/designs             stored design names
//	GET    /api/designs/{name}      fetch one design
//	PUT    /api/designs/{name}      store a design (validated first)
//	DELETE /api/designs/{name}      remove a design
//	POST   /api/diagram/validate    structural validation report
//	POST   /api/render              DOT/SVG/PNG rendering (?format=, ?detailed=)
//
// # Catalog Reloads
//
// The server holds the taxonomy and description index behind a mutex and
// exposes [Server.Reload] so a file watcher can swap in fresh data while the
// server runs. Handlers take a snapshot per request.
package server
