package babyjubjub

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/athanorlabs/go-babyjubjub/ff"
)

// PrivateKey is an EdDSA signing key: a non-zero scalar in [0, L).
type PrivateKey struct {
	s ff.Element
}

// GeneratePrivateKey samples a uniformly random signing key. A nil reader
// defaults to crypto/rand.
func GeneratePrivateKey(r io.Reader) (*PrivateKey, error) {
	for {
		s, err := L.Rand(r)
		if err != nil {
			return nil, fmt.Errorf("failed to sample private key: %w", err)
		}
		if !s.IsZero() {
			return &PrivateKey{s: s}, nil
		}
	}
}

// NewPrivateKeyFromScalar constructs a signing key from a fixed scalar.
//
// This exists for reproducible test vectors and circuit fixtures only.
// Production signers must use GeneratePrivateKey: reusing a fixed key
// defeats the scheme.
func NewPrivateKeyFromScalar(s ff.Element) (*PrivateKey, error) {
	if s.Modulus() != L {
		return nil, fmt.Errorf("private scalar must be an element of %s, got %s", L.Name(), s.Modulus().Name())
	}
	if s.IsZero() {
		return nil, errors.New("private scalar must be non-zero")
	}
	return &PrivateKey{s: s}, nil
}

// Scalar returns the private scalar.
func (k *PrivateKey) Scalar() ff.Element { return k.s }

// Public returns the public key A = sk*G.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{a: Generator().ScalarMul(k.s)}
}

// Sign produces the signature (R, S) for msg:
//
//	r = H(sk, msg) mod L    deterministic nonce
//	R = r*G
//	c = H(R.x, A.x, msg) mod L
//	S = r + c*sk mod L
//
// The nonce is derived from the key and message, so signing the same
// message twice yields the same R; a repeated nonce across distinct
// messages would reveal the key.
func (k *PrivateKey) Sign(msg []byte) (*Signature, error) {
	if k == nil || k.s.Modulus() != L || k.s.IsZero() {
		return nil, errors.New("babyjubjub: invalid private key")
	}

	r := hashToScalar(k.s.Bytes(), msg)
	R := Generator().ScalarMul(r)
	A := k.Public().a

	c := hashToScalar(R.x.Bytes(), A.x.Bytes(), msg)
	S := r.Add(c.Mul(k.s))
	return &Signature{R: R, S: S}, nil
}

// PublicKey is an EdDSA verification key: a curve point A = sk*G.
type PublicKey struct {
	a Point
}

// NewPublicKey constructs a verification-only key from a received point,
// validating curve membership.
func NewPublicKey(p Point) (*PublicKey, error) {
	if !p.IsOnCurve() {
		return nil, fmt.Errorf("%w: public key", ErrNotOnCurve)
	}
	return &PublicKey{a: p}, nil
}

// Point returns the public key point.
func (pk *PublicKey) Point() Point { return pk.a }

// Verify reports whether sig is a valid signature over msg, accepting iff
// S*G == R + c*A. Structurally invalid input (off-curve points, a non-
// subgroup S) fails with ErrInvalidSignature before any scalar
// multiplication is attempted; a well-formed but non-matching signature
// returns (false, nil).
func (pk *PublicKey) Verify(sig *Signature, msg []byte) (bool, error) {
	if sig == nil {
		return false, fmt.Errorf("%w: nil signature", ErrInvalidSignature)
	}
	if !sig.R.IsOnCurve() {
		return false, fmt.Errorf("%w: R is not on the curve", ErrInvalidSignature)
	}
	if sig.S.Modulus() != L {
		return false, fmt.Errorf("%w: S is not a subgroup scalar", ErrInvalidSignature)
	}
	if !pk.a.IsOnCurve() {
		return false, fmt.Errorf("%w: public key is not on the curve", ErrInvalidSignature)
	}

	c := hashToScalar(sig.R.x.Bytes(), pk.a.x.Bytes(), msg)
	lhs := Generator().ScalarMul(sig.S)
	rhs := sig.R.Add(pk.a.ScalarMul(c))
	return lhs.Equal(rhs), nil
}

// Signature is an EdDSA signature: a curve point R and a scalar S.
type Signature struct {
	R Point
	S ff.Element
}

// hashToScalar hashes the concatenation of chunks with sha256 and reduces
// the digest, read as a big-endian integer, into the scalar field.
//
// The framing (32-byte big-endian values, x-coordinates only for points) is
// what the circuit's verification gadget recomputes; both sides must hash
// identical bytes, so do not change it without changing the gadget.
func hashToScalar(chunks ...[]byte) ff.Element {
	h := sha256.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return L.Reduce(h.Sum(nil))
}
