// Package pkg provides the core libraries for archpad diagram editing.
//
// # Overview
//
// Archpad is the backend for a drag-and-drop architecture diagram editor: a
// canvas of labeled nodes connected by edges, with a palette of data and cloud
// tooling to drag from. The pkg directory is organized into five main areas:
//
//  1. [diagram] - The document model (nodes, edges, identifier assignment)
//  2. [io] - JSON import/export of diagram documents
//  3. [catalog] - Palette taxonomy and tool descriptions
//  4. [store] - Persistence backends for named designs
//  5. [render] - Graphviz rendering of diagrams
//
// Supporting packages: [palette] tracks collapse state for taxonomy trees,
// [cache] stores rendered artifacts, [watch] reloads catalog files on change,
// [errors] defines structured error codes, [observability] exposes
// instrumentation hooks, and [buildinfo] carries build-time version data.
//
// # Architecture
//
// The typical data flow through archpad:
//
//	catalog.json / descriptions.json
//	         ↓
//	    [catalog] package (taxonomy + description index)
//	         ↓
//	    [diagram] package (document model, editing operations)
//	         ↓
//	    [io] package (JSON envelope, counter reconciliation)
//	         ↓
//	    [store] package (memory/file/redis/mongo persistence)
//	         ↓
//	    [render] package (DOT → SVG/PNG output)
//
// # Quick Start
//
// Build a diagram and export it:
//
//	import (
//	    "github.com/archpadhq/archpad/pkg/catalog"
//	    "github.com/archpadhq/archpad/pkg/diagram"
//	    appio "github.com/archpadhq/archpad/pkg/io"
//	)
//
//	index, _ := catalog.LoadIndex("descriptions.json")
//	doc := diagram.New(index.Describe)
//
//	kafka := doc.CreateNode("Kafka", false, diagram.Position{X: 100, Y: 50})
//	flink := doc.CreateNode("Flink", false, diagram.Position{X: 300, Y: 50})
//	doc.Connect(kafka.ID, flink.ID, "", "")
//
//	_ = appio.ExportJSON(doc, "architecture.json")
package pkg
