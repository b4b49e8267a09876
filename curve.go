// Package babyjubjub implements the Baby Jubjub twisted Edwards curve and
// an EdDSA signature scheme over its prime-order subgroup.
//
// The curve is 168700*x^2 + y^2 = 1 + 168696*x^2*y^2 over the scalar field
// of BN254, chosen so that the same arithmetic is cheap to express inside a
// zero-knowledge circuit. Every operation here is the off-circuit reference
// for a corresponding in-circuit gadget, so all values are kept in canonical
// affine form: no representation drift is permitted past this package's
// boundary.
package babyjubjub

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-babyjubjub/ff"
)

var (
	// Q is the base field of the point coordinates.
	Q = ff.NewModulus("babyjubjub base field", "21888242871839275222246405745257275088548364400416034343698204186575808495617")

	// L is the prime order of the cryptographic subgroup. Private keys and
	// signature scalars are elements of this field.
	L = ff.NewModulus("babyjubjub subgroup order", "2736030358979909402780800718157159386076813972158567259200215660948447373041")

	// Order is the full group order, 8 * L.
	Order, _ = new(big.Int).SetString("21888242871839275222246405745257275088614511777268538073601725287587578984328", 10)

	// Cofactor is the index of the prime-order subgroup in the full group.
	Cofactor = big.NewInt(8)

	paramA = Q.FromUint64(168700)
	paramD = Q.FromUint64(168696)

	genX, _ = Q.FromString("16540640123574156134436876038791482806971768689494387082833631921987005038935")
	genY, _ = Q.FromString("20819045374670962167435360035096875258406992893633759881276124905556507972311")
)

// Point is a point on the curve in affine coordinates. Points are immutable
// values; the zero value is not on the curve, use Identity or a constructor.
type Point struct {
	x, y ff.Element
}

// NewPoint constructs a point from affine coordinates, validating the curve
// equation.
func NewPoint(x, y ff.Element) (Point, error) {
	p := Point{x: x, y: y}
	if !p.IsOnCurve() {
		return Point{}, fmt.Errorf("%w: (%s, %s)", ErrNotOnCurve, x, y)
	}
	return p, nil
}

// Generator returns the base point G of the order-L subgroup.
func Generator() Point {
	return Point{x: genX, y: genY}
}

// Identity returns the group identity (0, 1).
func Identity() Point {
	return Point{x: Q.Zero(), y: Q.One()}
}

// X returns the affine x-coordinate.
func (p Point) X() ff.Element { return p.x }

// Y returns the affine y-coordinate.
func (p Point) Y() ff.Element { return p.y }

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.x.IsZero() && p.y.IsOne()
}

// Equal reports exact equality of the affine coordinates.
func (p Point) Equal(q Point) bool {
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Neg returns (-x, y), the group inverse of p.
func (p Point) Neg() Point {
	return Point{x: p.x.Neg(), y: p.y}
}

// IsOnCurve reports whether p satisfies the curve equation. The identity
// (0, 1) satisfies it trivially.
func (p Point) IsOnCurve() bool {
	xsq := p.x.Square()
	ysq := p.y.Square()
	lhs := paramA.Mul(xsq).Add(ysq)
	rhs := Q.One().Add(paramD.Mul(xsq).Mul(ysq))
	return lhs.Equal(rhs)
}

// Add returns p + q using the complete twisted Edwards addition formula.
// Since a is a square and d is not, the denominators are non-zero for all
// curve points, including p == q and the identity.
func (p Point) Add(q Point) Point {
	x1x2 := p.x.Mul(q.x)
	y1y2 := p.y.Mul(q.y)
	dxy := paramD.Mul(x1x2).Mul(y1y2)

	xden, err := Q.One().Add(dxy).Inverse()
	if err != nil {
		panic("babyjubjub: complete addition denominator is zero")
	}
	yden, err := Q.One().Sub(dxy).Inverse()
	if err != nil {
		panic("babyjubjub: complete addition denominator is zero")
	}

	x3 := p.x.Mul(q.y).Add(p.y.Mul(q.x)).Mul(xden)
	y3 := y1y2.Sub(paramA.Mul(x1x2)).Mul(yden)
	return Point{x: x3, y: y3}
}

// Double returns 2p.
func (p Point) Double() Point {
	return p.Add(p)
}

// ScalarMul returns k*p for a subgroup scalar. Scalars are always elements
// of L, so they enter already reduced into [0, L); cofactor clearing is the
// caller's concern.
func (p Point) ScalarMul(k ff.Element) Point {
	if k.Modulus() != L {
		panic(fmt.Errorf("%w: scalar is %s, expected %s", ff.ErrModulusMismatch, k.Modulus().Name(), L.Name()))
	}
	return p.mulInt(k.BigInt())
}

// mulInt is double-and-add over the bits of k, most significant first.
// It accepts arbitrary non-negative integers so that cofactor clearing and
// full-order checks can use it directly.
func (p Point) mulInt(k *big.Int) Point {
	acc := Identity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if k.Bit(i) == 1 {
			acc = acc.Add(p)
		}
	}
	return acc
}

// MulByCofactor returns 8*p, mapping any curve point into the order-L
// subgroup.
func (p Point) MulByCofactor() Point {
	return p.Double().Double().Double()
}

// InSubgroup reports whether p lies in the prime-order subgroup.
func (p Point) InSubgroup() bool {
	return p.mulInt(L.Prime()).IsIdentity()
}

// FromX recovers a point from its x-coordinate, choosing the root of
//
//	y^2 = (a*x^2 - 1) / (d*x^2 - 1)
//
// whose parity (least significant bit) matches sign. It fails with
// ErrNotOnCurve when no valid y exists.
func FromX(x ff.Element, sign uint8) (Point, error) {
	xsq := x.Square()
	den, err := paramD.Mul(xsq).Sub(Q.One()).Inverse()
	if err != nil {
		return Point{}, fmt.Errorf("%w: no y exists for x=%s", ErrNotOnCurve, x)
	}
	ysq := paramA.Mul(xsq).Sub(Q.One()).Mul(den)
	y, err := ysq.Sqrt()
	if err != nil {
		return Point{}, fmt.Errorf("%w: no y exists for x=%s", ErrNotOnCurve, x)
	}
	if uint8(y.Bit(0)) != sign&1 {
		y = y.Neg()
	}
	return Point{x: x, y: y}, nil
}

// FromY recovers a point from its y-coordinate, choosing the root of
//
//	x^2 = (y^2 - 1) / (d*y^2 - a)
//
// whose parity matches sign. This is the decoding direction used by the
// compressed wire format. It fails with ErrNotOnCurve when no valid x
// exists.
func FromY(y ff.Element, sign uint8) (Point, error) {
	x, err := recoverX(y)
	if err != nil {
		return Point{}, err
	}
	if uint8(x.Bit(0)) != sign&1 {
		x = x.Neg()
	}
	return Point{x: x, y: y}, nil
}

// fromYNormalized is FromY with the root normalized to the non-negative
// representative, the convention hash-to-point uses.
func fromYNormalized(y ff.Element) (Point, error) {
	x, err := recoverX(y)
	if err != nil {
		return Point{}, err
	}
	if x.IsNegative() {
		x = x.Neg()
	}
	return Point{x: x, y: y}, nil
}

func recoverX(y ff.Element) (ff.Element, error) {
	ysq := y.Square()
	den, err := paramD.Mul(ysq).Sub(paramA).Inverse()
	if err != nil {
		return ff.Element{}, fmt.Errorf("%w: no x exists for y=%s", ErrNotOnCurve, y)
	}
	xsq := ysq.Sub(Q.One()).Mul(den)
	x, err := xsq.Sqrt()
	if err != nil {
		return ff.Element{}, fmt.Errorf("%w: no x exists for y=%s", ErrNotOnCurve, y)
	}
	return x, nil
}

// maxHashToPointTries bounds the y-increment loop in HashToPoint. Roughly
// half of all field elements are valid y-coordinates, so exhausting the
// bound indicates a broken configuration rather than bad luck.
const maxHashToPointTries = 256

// HashToPoint deterministically maps entropy to a point of the prime-order
// subgroup. The input is hashed with sha256 and the digest interpreted as a
// candidate y-coordinate, incremented until the curve equation admits an x;
// the recovered point is multiplied by the cofactor.
func HashToPoint(entropy []byte) (Point, error) {
	digest := sha256.Sum256(entropy)
	y := Q.Reduce(digest[:])
	for i := 0; i < maxHashToPointTries; i++ {
		p, err := fromYNormalized(y)
		if errors.Is(err, ErrNotOnCurve) {
			y = y.Add(Q.One())
			continue
		}
		if err != nil {
			return Point{}, err
		}

		p = p.MulByCofactor()
		if !p.InSubgroup() {
			return Point{}, errors.New("babyjubjub: hashed point is not in the prime-order subgroup")
		}
		return p, nil
	}
	return Point{}, fmt.Errorf("babyjubjub: no curve point found after %d attempts", maxHashToPointTries)
}
