// Package store persists named diagram designs - the design catalog the UI
// offers as a selectable list next to plain file import/export.
//
// # Backends
//
// Four implementations of [Store] exist:
//
//	// Tests and throwaway sessions
//	s := store.NewMemoryStore()
//
//	// Single-user serving: a directory of <name>.json files
//	s, err := store.NewFileStore("./designs")
//
//	// Shared deployments
//	s, err := store.NewRedisStore(ctx, store.RedisConfig{Addr: "localhost:6379"})
//	s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: "mongodb://localhost:27017"})
//
// All backends store the same serialization envelope ([io.Diagram]) and share
// the naming rules enforced by [ValidateName], so a deployment can switch
// backends without touching callers.
//
// [io.Diagram]: github.com/archpadhq/archpad/pkg/io.Diagram
package store
