// Package markdown implements the content pipeline for file-backed posts:
// front matter extraction, filesystem discovery, and goldmark-based
// rendering with a configurable per-construct class mapping.
//
// Rendering is strictly tree-based (tokenize -> AST -> annotate ->
// serialize). The annotation pass produces attributes on a freshly parsed
// tree for every call; no tree is mutated while another traversal observes
// it, and no state survives between calls.
package markdown
