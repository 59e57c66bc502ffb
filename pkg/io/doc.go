// Package io provides JSON import and export for diagram documents.
//
// # Overview
//
// The envelope format is what the browser downloads on export (as
// architecture.json), uploads on import, and what design stores persist. It
// is designed for round-trip fidelity: export, re-import, and export again
// produces byte-identical output.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {
//	      "id": "node_0",
//	      "type": "default",
//	      "position": {"x": 120, "y": 80},
//	      "data": {"label": "Lambda", "description": "Serverless compute", "isCustom": false}
//	    }
//	  ],
//	  "edges": [
//	    {"id": "8f14e45f", "source": "node_0", "target": "node_1", "animated": true, "markerEnd": "arrowclosed"}
//	  ]
//	}
//
// Both top-level arrays are optional and default to empty. Node IDs must be
// unique; edges must reference nodes present in the same envelope - a
// dangling edge fails the import instead of restoring a corrupt document.
//
// # Identifier Reconciliation
//
// Imported diagrams may contain generated node_<n> IDs alongside externally
// authored ones. Import scans the generated pattern, advances the document's
// ID counter to max+1 (or 0 with no matches), and only then hands the
// document back, so nodes created afterwards never collide with imported
// ones.
//
// # Behavior Re-binding
//
// Nothing behavioral is serialized. Mutation operations live on
// [diagram.Document] keyed by node ID, so a restored document is immediately
// editable - the describe lookup passed to [ReadJSON] only seeds descriptions
// of nodes created later.
//
// [diagram.Document]: github.com/archpadhq/archpad/pkg/diagram.Document
package io
