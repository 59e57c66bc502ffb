// Package palette tracks the expand/collapse state of the nested palette
// tree (platform, category, type). Each tree row is addressed by a stable
// path key; rows default to collapsed. The same state logic drives the
// browser sidebar and the terminal browse view.
package palette
