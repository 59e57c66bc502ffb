// Package diagram implements the document model behind the Archpad canvas:
// labeled, positioned nodes connected by directed edges.
//
// # Document Model
//
// A [Document] owns its nodes, edges, and identifier assignment. Nodes carry
// only data - there are no behavior callbacks attached to individual nodes.
// All mutations are methods on the document keyed by node ID, so a restored
// diagram is immediately editable without re-binding anything.
//
// # Identifier Assignment
//
// Nodes created through [Document.CreateNode] receive node_<n> identifiers
// from a per-document counter. Diagrams restored from export may contain both
// generated and externally authored IDs; [Document.SyncCounter] advances the
// counter past every generated-pattern ID so later creations never collide.
// Externally authored IDs are ignored for counter advancement but remain
// first-class document members.
//
// # Invariants
//
//   - Every edge's source and target name a node present in the document.
//   - Removing a node cascades to every edge referencing it, atomically from
//     the caller's perspective.
//   - Catalog-derived node labels are fixed; only custom nodes accept
//     [Document.Relabel].
//
// # Concurrency
//
// Document is single-writer by construction: mutations arrive synchronously
// from one event-dispatch goroutine, so the type carries no locking. Wrap it
// externally if that assumption does not hold.
package diagram
