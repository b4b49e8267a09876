// Package pedersen implements the windowed Pedersen hash over Baby Jubjub.
//
// The preimage is consumed as 3-bit windows; each window selects a signed
// multiple of a per-window generator point and the digest is the sum of the
// selected multiples. The generator table is derived once from a
// personalization tag and is independent of any input, so a Hasher is
// read-only after construction and safe for concurrent use.
package pedersen

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/athanorlabs/go-babyjubjub"
)

const (
	windowBits = 3

	// windowsPerBasepoint is how many windows can share one basepoint
	// before the accumulated doublings could overflow the subgroup,
	// following theorem 5.4.1 of the Sapling spec for this curve.
	windowsPerBasepoint = 62

	// maxTagLen is fixed by the basepoint personalization layout, which
	// left-pads the tag to 28 bytes before the 4-digit counter.
	maxTagLen = 28

	maxBasepointIndex = 0xFFFF
)

// ErrInputTooLong is returned when a preimage needs more windows than the
// hasher's generator table supports. The capacity is fixed at construction;
// inputs are never truncated.
var ErrInputTooLong = errors.New("pedersen: preimage exceeds hasher capacity")

// Hasher maps byte strings to curve points under a fixed personalization
// tag. Identical (tag, preimage) pairs always produce the identical point,
// bit-for-bit with the in-circuit implementation of the same windowing.
type Hasher struct {
	tag      []byte
	segments int
	gens     []babyjubjub.Point
}

// NewHasher derives the generator table for the given personalization tag
// and capacity, counted in 3-bit windows (SegmentsForBytes converts a byte
// length). The tag must be 1..28 bytes.
func NewHasher(tag []byte, segments int) (*Hasher, error) {
	if len(tag) == 0 || len(tag) > maxTagLen {
		return nil, fmt.Errorf("pedersen: tag must be 1..%d bytes, got %d", maxTagLen, len(tag))
	}
	if segments <= 0 {
		return nil, errors.New("pedersen: segment count must be positive")
	}
	if (segments-1)/windowsPerBasepoint > maxBasepointIndex {
		return nil, fmt.Errorf("pedersen: segment count %d exceeds the basepoint counter space", segments)
	}

	gens := make([]babyjubjub.Point, segments)
	var current babyjubjub.Point
	for j := 0; j < segments; j++ {
		if j%windowsPerBasepoint == 0 {
			p, err := basepoint(tag, j/windowsPerBasepoint)
			if err != nil {
				return nil, err
			}
			current = p
		} else {
			// generator_j = 2^4 * generator_{j-1}
			current = current.Double().Double().Double().Double()
		}
		gens[j] = current
	}

	return &Hasher{
		tag:      append([]byte(nil), tag...),
		segments: segments,
		gens:     gens,
	}, nil
}

// basepoint derives the i-th seed generator for the tag by hashing the
// padded tag and counter to a subgroup point.
func basepoint(tag []byte, i int) (babyjubjub.Point, error) {
	data := fmt.Sprintf("%-28s%04X", tag, i)
	p, err := babyjubjub.HashToPoint([]byte(data))
	if err != nil {
		return babyjubjub.Point{}, fmt.Errorf("deriving basepoint %d for tag %q: %w", i, tag, err)
	}
	return p, nil
}

// Tag returns the personalization tag.
func (h *Hasher) Tag() []byte { return append([]byte(nil), h.tag...) }

// SegmentCount returns the capacity in 3-bit windows.
func (h *Hasher) SegmentCount() int { return h.segments }

// SegmentsForBytes returns the window capacity needed to hash an n-byte
// preimage.
func SegmentsForBytes(n int) int {
	return (8*n + windowBits - 1) / windowBits
}

// HashBytes hashes a preimage into a curve point. The bytes are read as a
// most-significant-bit-first bit stream and split into 3-bit windows,
// zero-padding the final window. It fails with ErrInputTooLong when the
// preimage needs more windows than the table holds.
func (h *Hasher) HashBytes(preimage []byte) (babyjubjub.Point, error) {
	if len(preimage) == 0 {
		return babyjubjub.Point{}, errors.New("pedersen: empty preimage")
	}

	n := uint(len(preimage) * 8)
	bits := bitset.New(n)
	for i, b := range preimage {
		for j := 0; j < 8; j++ {
			if b&(0x80>>j) != 0 {
				bits.Set(uint(i*8 + j))
			}
		}
	}
	return h.HashBits(bits, n)
}

// HashBits hashes the first n bits of the stream. This is the entry point
// matching the circuit gadget, which consumes the preimage as a bit array.
//
// Window values are read least-significant-bit-first: bit 3w is the low bit
// of window w. A window value v selects the multiplier (v&3)+1, negated
// when v > 3, applied to the w-th generator.
func (h *Hasher) HashBits(bits *bitset.BitSet, n uint) (babyjubjub.Point, error) {
	windows := int((n + windowBits - 1) / windowBits)
	if windows > h.segments {
		return babyjubjub.Point{}, fmt.Errorf("%w: %d windows vs capacity %d", ErrInputTooLong, windows, h.segments)
	}

	acc := babyjubjub.Identity()
	for w := 0; w < windows; w++ {
		var v uint
		for b := uint(0); b < windowBits; b++ {
			i := uint(w)*windowBits + b
			if i < n && bits.Test(i) {
				v |= 1 << b
			}
		}

		seg := h.gens[w]
		switch v & 0b11 {
		case 1:
			seg = seg.Double()
		case 2:
			seg = seg.Double().Add(h.gens[w])
		case 3:
			seg = seg.Double().Double()
		}
		if v > 0b11 {
			seg = seg.Neg()
		}
		acc = acc.Add(seg)
	}
	return acc, nil
}
