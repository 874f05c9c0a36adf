package fuzzy

import "sync"

// signatureSeeds drive the independent hash functions used for item
// signatures. More seeds means fewer false bucket collisions.
var signatureSeeds = [5]uint64{
	0x9e3779b97f4a7c15,
	0xc2b2ae3d27d4eb4f,
	0x165667b19e3779f9,
	0x27d4eb2f165667c5,
	0x85ebca6b2c2b2ae3,
}

// Bucketer groups near-duplicate items by a locality-sensitive
// signature built from min-hashed rune bigrams. Grouping never changes
// the relative order of matches; it only annotates or drops duplicates.
// It is safe for concurrent use.
type Bucketer struct {
	mu      sync.RWMutex
	buckets map[uint64][]int
	sigs    map[int]uint64
}

// NewBucketer creates an empty bucketer.
func NewBucketer() *Bucketer {
	return &Bucketer{
		buckets: make(map[uint64][]int),
		sigs:    make(map[int]uint64),
	}
}

// Add indexes an item under its signature.
func (b *Bucketer) Add(item Item) {
	sig := Signature(item.Text)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets[sig] = append(b.buckets[sig], item.Index)
	b.sigs[item.Index] = sig
}

// Neighbors returns the indices of previously added items sharing the
// signature of text, in insertion order.
func (b *Bucketer) Neighbors(text string) []int {
	sig := Signature(text)

	b.mu.RLock()
	defer b.mu.RUnlock()

	bucket := b.buckets[sig]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]int, len(bucket))
	copy(out, bucket)
	return out
}

// Dedupe drops matches whose signature was already seen earlier in the
// slice, keeping the first occurrence. Relative order is preserved, so
// ranking invariants hold with grouping enabled.
func (b *Bucketer) Dedupe(matches []Match) []Match {
	if len(matches) < 2 {
		return matches
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[uint64]bool, len(matches))
	out := matches[:0:0]
	for _, m := range matches {
		sig, ok := b.sigs[m.Item.Index]
		if !ok {
			sig = Signature(m.Item.Text)
		}
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, m)
	}
	return out
}

// Len returns the number of distinct buckets.
func (b *Bucketer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buckets)
}

// Signature computes the locality-sensitive signature of text: the
// folded min-hashes of its rune bigrams under each seed. Texts that
// share most bigrams collide with high probability.
func Signature(text string) uint64 {
	runes := []rune(text)

	var sig uint64
	for _, seed := range signatureSeeds {
		minHash := ^uint64(0)
		if len(runes) < 2 {
			minHash = mix(seed, uint64(len(runes)))
			if len(runes) == 1 {
				minHash = mix(seed, uint64(runes[0]))
			}
		}
		for i := 0; i+1 < len(runes); i++ {
			h := mix(seed, uint64(runes[i])<<21^uint64(runes[i+1]))
			if h < minHash {
				minHash = h
			}
		}
		sig = sig*31 + minHash
	}
	return sig
}

// mix is a splitmix64 round keyed by seed.
func mix(seed, v uint64) uint64 {
	z := seed + v + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
