// Package catalog loads the static tool catalog behind the palette sidebar.
//
// Two source files feed it: a catalog of tool records (category, type, and
// per-platform tool name lists) and a description file mapping tool names to
// default free-text descriptions.
//
// [BuildTaxonomy] groups records into the three-level palette tree - platform,
// category, type - deduplicating tool names within a type. Platforms appear in
// the fixed [Platforms] order; categories, types, and tools keep first-seen
// order from the source.
//
// Both loaders are strict: a missing or malformed file returns an error.
// Callers log it and continue with an empty taxonomy or index - a source
// failure degrades the palette, never the process.
package catalog
