// Package cardfs models the ISO7816-4 smart card filesystem (MF, DF, ADF
// and EF entries) as an addressable tree, together with the codec machinery
// to translate between on-card binary records and abstract values.
//
// The tree describes the *specification* of a card's filesystem, not its
// runtime contents: file bodies live on the card and are reached through the
// [Transport] interface. See the filesystem package for the tree itself, the
// session package for selection tracking and read/write gating, and the
// definitions package for assembling trees from YAML/JSON files.
package cardfs
