// Package fuzzy implements the matching engine: a two-pass filter that
// ranks substring hits ahead of subsequence hits, with an LRU result
// cache and optional similarity bucketing for near-duplicate items.
package fuzzy
