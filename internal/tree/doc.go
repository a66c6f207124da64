// Package tree holds the in-memory configuration tree: an insertion-ordered
// mapping of string keys to nested mappings, sequences ([]any) and scalars.
// Round-trip loads attach comments and flow style to the same type so that
// formatting survives a later save.
package tree
