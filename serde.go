package babyjubjub

import (
	"fmt"

	"github.com/athanorlabs/go-babyjubjub/ff"
)

// CompressedSize is the byte length of a compressed point.
const CompressedSize = 32

// SignatureSize is the byte length of a serialized signature.
const SignatureSize = 2 * CompressedSize

// Compress encodes the point as its y-coordinate, big-endian, with the
// parity of x stored in the top bit.
func (p Point) Compress() []byte {
	b := p.y.Bytes()
	if p.x.Bit(0) == 1 {
		b[0] |= 0x80
	}
	return b
}

// Decompress decodes a compressed point, recovering x from the curve
// equation. It fails with ff.ErrNonCanonical for a non-reduced y and with
// ErrNotOnCurve when y admits no x.
func Decompress(b []byte) (Point, error) {
	if len(b) != CompressedSize {
		return Point{}, fmt.Errorf("%w: compressed point must be %d bytes, got %d", ff.ErrNonCanonical, CompressedSize, len(b))
	}
	sign := b[0] >> 7
	yb := make([]byte, CompressedSize)
	copy(yb, b)
	yb[0] &= 0x7f

	y, err := Q.FromBytes(yb)
	if err != nil {
		return Point{}, fmt.Errorf("decoding y-coordinate: %w", err)
	}
	return FromY(y, sign)
}

// String renders the affine coordinates in decimal.
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// Serialize encodes the signature as compressed R followed by S, 64 bytes.
func (s *Signature) Serialize() []byte {
	return append(s.R.Compress(), s.S.Bytes()...)
}

// DeserializeSignature decodes and validates a serialized signature. R must
// decompress to a curve point and S must be a canonical subgroup scalar;
// anything else fails with ErrInvalidSignature. Nothing is silently
// coerced: a non-canonical encoding never becomes a valid signature.
func DeserializeSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, SignatureSize, len(b))
	}
	R, err := Decompress(b[:CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid R: %v", ErrInvalidSignature, err)
	}
	S, err := L.FromBytes(b[CompressedSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: S is not a canonical subgroup scalar", ErrInvalidSignature)
	}
	return &Signature{R: R, S: S}, nil
}
