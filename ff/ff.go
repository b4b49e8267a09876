// Package ff implements arithmetic over the prime fields underlying the
// Baby Jubjub curve: the base field of the point coordinates and the prime
// order of the cryptographic subgroup used for scalars.
//
// Both fields share one Element type bound to a Modulus. Elements are
// immutable values; every operation returns a new, fully reduced element.
// Mixing elements of different moduli is a programming error and panics.
package ff

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Size is the fixed byte length of an encoded element.
const Size = 32

var (
	// ErrModulusMismatch is the panic value raised when a binary operation
	// mixes elements constructed against different moduli.
	ErrModulusMismatch = errors.New("ff: elements have different moduli")

	// ErrNotInvertible is returned when inverting the zero element.
	ErrNotInvertible = errors.New("ff: zero is not invertible")

	// ErrNonCanonical is returned when a decoded integer is not in
	// [0, modulus) or has the wrong width.
	ErrNonCanonical = errors.New("ff: encoding is not canonical")

	// ErrNoSquareRoot is returned by Sqrt for quadratic non-residues.
	ErrNoSquareRoot = errors.New("ff: value is not a quadratic residue")
)

// Modulus is a fixed prime modulus defining a field. The two instances used
// by this module are defined in the babyjubjub package; they are compared by
// identity, so each field must be represented by exactly one Modulus value.
type Modulus struct {
	name string
	p    *big.Int
}

// NewModulus parses a decimal prime. It panics on malformed input as moduli
// are compile-time constants.
func NewModulus(name, dec string) *Modulus {
	p, ok := new(big.Int).SetString(dec, 10)
	if !ok || p.Sign() <= 0 {
		panic("ff: invalid modulus: " + dec)
	}
	return &Modulus{name: name, p: p}
}

// Name returns the description the modulus was registered with.
func (m *Modulus) Name() string { return m.name }

// Prime returns a copy of the modulus value.
func (m *Modulus) Prime() *big.Int { return new(big.Int).Set(m.p) }

// BitLen returns the bit length of the modulus.
func (m *Modulus) BitLen() int { return m.p.BitLen() }

// NewElement returns v reduced into [0, m).
func (m *Modulus) NewElement(v *big.Int) Element {
	return Element{n: new(big.Int).Mod(v, m.p), m: m}
}

// FromUint64 returns the element representing v.
func (m *Modulus) FromUint64(v uint64) Element {
	return m.NewElement(new(big.Int).SetUint64(v))
}

// Zero returns the additive identity.
func (m *Modulus) Zero() Element { return Element{n: new(big.Int), m: m} }

// One returns the multiplicative identity.
func (m *Modulus) One() Element { return Element{n: big.NewInt(1), m: m} }

// FromBytes decodes a fixed-width big-endian element. The encoding must be
// canonical: exactly Size bytes and strictly below the modulus.
func (m *Modulus) FromBytes(b []byte) (Element, error) {
	if len(b) != Size {
		return Element{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrNonCanonical, Size, len(b))
	}
	n := new(big.Int).SetBytes(b)
	if n.Cmp(m.p) >= 0 {
		return Element{}, fmt.Errorf("%w: value is not reduced mod %s", ErrNonCanonical, m.name)
	}
	return Element{n: n, m: m}, nil
}

// FromString decodes a canonical decimal element, rejecting values outside
// [0, m).
func (m *Modulus) FromString(s string) (Element, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Element{}, fmt.Errorf("%w: not a decimal integer: %q", ErrNonCanonical, s)
	}
	if n.Sign() < 0 || n.Cmp(m.p) >= 0 {
		return Element{}, fmt.Errorf("%w: value is not reduced mod %s", ErrNonCanonical, m.name)
	}
	return Element{n: n, m: m}, nil
}

// FromHex decodes a canonical hex element (without 0x prefix), rejecting
// values outside [0, m).
func (m *Modulus) FromHex(s string) (Element, error) {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return Element{}, fmt.Errorf("%w: not a hex integer: %q", ErrNonCanonical, s)
	}
	if n.Sign() < 0 || n.Cmp(m.p) >= 0 {
		return Element{}, fmt.Errorf("%w: value is not reduced mod %s", ErrNonCanonical, m.name)
	}
	return Element{n: n, m: m}, nil
}

// Reduce interprets b as a big-endian integer of any length and reduces it
// into the field. Used for hash outputs; external encodings go through
// FromBytes, which enforces canonicality.
func (m *Modulus) Reduce(b []byte) Element {
	return m.NewElement(new(big.Int).SetBytes(b))
}

// Rand samples a uniform element in [0, m) from r.
func (m *Modulus) Rand(r io.Reader) (Element, error) {
	if r == nil {
		r = crand.Reader
	}
	n, err := crand.Int(r, m.p)
	if err != nil {
		return Element{}, fmt.Errorf("failed to sample field element: %w", err)
	}
	return Element{n: n, m: m}, nil
}

// Element is an immutable field element in [0, modulus). The zero value is
// not usable; elements are obtained from a Modulus.
type Element struct {
	n *big.Int
	m *Modulus
}

// Modulus returns the modulus the element was constructed against.
func (z Element) Modulus() *Modulus { return z.m }

// BigInt returns a copy of the canonical integer value.
func (z Element) BigInt() *big.Int { return new(big.Int).Set(z.n) }

// IsZero reports whether z is the additive identity.
func (z Element) IsZero() bool { return z.n.Sign() == 0 }

// IsOne reports whether z is the multiplicative identity.
func (z Element) IsOne() bool { return z.n.Cmp(bigOne) == 0 }

// Equal reports whether z and other are the same element. Comparing across
// moduli panics.
func (z Element) Equal(other Element) bool {
	z.mustMatch(other)
	return z.n.Cmp(other.n) == 0
}

// Add returns z + other.
func (z Element) Add(other Element) Element {
	z.mustMatch(other)
	n := new(big.Int).Add(z.n, other.n)
	if n.Cmp(z.m.p) >= 0 {
		n.Sub(n, z.m.p)
	}
	return Element{n: n, m: z.m}
}

// Sub returns z - other.
func (z Element) Sub(other Element) Element {
	z.mustMatch(other)
	n := new(big.Int).Sub(z.n, other.n)
	if n.Sign() < 0 {
		n.Add(n, z.m.p)
	}
	return Element{n: n, m: z.m}
}

// Neg returns -z.
func (z Element) Neg() Element {
	if z.n.Sign() == 0 {
		return Element{n: new(big.Int), m: z.m}
	}
	return Element{n: new(big.Int).Sub(z.m.p, z.n), m: z.m}
}

// Mul returns z * other.
func (z Element) Mul(other Element) Element {
	z.mustMatch(other)
	n := new(big.Int).Mul(z.n, other.n)
	return Element{n: n.Mod(n, z.m.p), m: z.m}
}

// Square returns z * z.
func (z Element) Square() Element {
	n := new(big.Int).Mul(z.n, z.n)
	return Element{n: n.Mod(n, z.m.p), m: z.m}
}

// Exp returns z^e for a non-negative exponent.
func (z Element) Exp(e *big.Int) Element {
	return Element{n: new(big.Int).Exp(z.n, e, z.m.p), m: z.m}
}

// Inverse returns the multiplicative inverse, computed as z^(p-2). It fails
// with ErrNotInvertible for the zero element; every other element of a prime
// field is invertible.
func (z Element) Inverse() (Element, error) {
	if z.IsZero() {
		return Element{}, ErrNotInvertible
	}
	e := new(big.Int).Sub(z.m.p, bigTwo)
	return z.Exp(e), nil
}

// Sqrt returns a square root of z, or ErrNoSquareRoot if z is not a
// quadratic residue. Which of the two roots is returned is unspecified;
// callers normalize the sign themselves.
func (z Element) Sqrt() (Element, error) {
	r := new(big.Int).ModSqrt(z.n, z.m.p)
	if r == nil {
		return Element{}, ErrNoSquareRoot
	}
	return Element{n: r, m: z.m}, nil
}

// IsNegative reports whether z is "negative" under the encoding convention
// inherited from the EdDSA paper: z is negative when it is smaller than -z.
func (z Element) IsNegative() bool {
	return z.n.Cmp(z.Neg().n) < 0
}

// Bit returns the i-th bit of the canonical value.
func (z Element) Bit(i int) uint { return z.n.Bit(i) }

// BitLen returns the bit length of the canonical value.
func (z Element) BitLen() int { return z.n.BitLen() }

// Bytes returns the fixed-width big-endian encoding.
func (z Element) Bytes() []byte {
	b := make([]byte, Size)
	z.n.FillBytes(b)
	return b
}

// String returns the canonical decimal representation, the form consumed by
// the circuit compiler's witness format.
func (z Element) String() string { return z.n.String() }

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

func (z Element) mustMatch(other Element) {
	if z.m == nil || other.m == nil {
		panic(fmt.Errorf("%w: uninitialized element", ErrModulusMismatch))
	}
	if z.m != other.m {
		panic(fmt.Errorf("%w: %s vs %s", ErrModulusMismatch, z.m.name, other.m.name))
	}
}
