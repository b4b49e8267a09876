package babyjubjub

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-babyjubjub/ff"
)

// test point from the original jubjub test suite
func pointA(t *testing.T) Point {
	t.Helper()
	x, err := Q.FromHex("274dbce8d15179969bc0d49fa725bddf9de555e0ba6a693c6adb52fc9ee7a82c")
	require.NoError(t, err)
	y, err := Q.FromHex("05ce98c61b05f47fe2eae9a542bd99f6b2e78246231640b54595febfd51eb853")
	require.NoError(t, err)
	p, err := NewPoint(x, y)
	require.NoError(t, err)
	return p
}

func pointADouble(t *testing.T) Point {
	t.Helper()
	x, err := Q.FromString("6890855772600357754907169075114257697580319025794532037257385534741338397365")
	require.NoError(t, err)
	y, err := Q.FromString("4338620300185947561074059802482547481416142213883829469920100239455078257889")
	require.NoError(t, err)
	p, err := NewPoint(x, y)
	require.NoError(t, err)
	return p
}

func genScalar() gopter.Gen {
	return gen.SliceOfN(ff.Size, gen.UInt8()).Map(func(b []uint8) ff.Element {
		return L.Reduce(b)
	})
}

func genPoint() gopter.Gen {
	return genScalar().Map(func(k ff.Element) Point {
		return Generator().ScalarMul(k)
	})
}

func TestGeneratorOnCurve(t *testing.T) {
	require.True(t, Generator().IsOnCurve())
	require.True(t, Generator().InSubgroup())
	require.True(t, Identity().IsOnCurve())
}

func TestDoubleViaAdd(t *testing.T) {
	a := pointA(t)
	require.True(t, a.Add(a).Equal(pointADouble(t)))
	require.True(t, a.Double().Equal(pointADouble(t)))
}

func TestScalarMulTwo(t *testing.T) {
	a := pointA(t)
	require.True(t, a.ScalarMul(L.FromUint64(2)).Equal(pointADouble(t)))
}

func TestCyclic(t *testing.T) {
	g := Generator()
	ePlusOne := new(big.Int).Add(Order, big.NewInt(1))
	require.True(t, g.mulInt(ePlusOne).Equal(g))
	require.True(t, g.mulInt(L.Prime()).IsIdentity())
}

func TestGroupLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("P + identity == P", prop.ForAll(
		func(p Point) bool {
			return p.Add(Identity()).Equal(p)
		},
		genPoint(),
	))

	properties.Property("P + (-P) == identity", prop.ForAll(
		func(p Point) bool {
			return p.Add(p.Neg()).IsIdentity()
		},
		genPoint(),
	))

	properties.Property("double(P) == P + P", prop.ForAll(
		func(p Point) bool {
			return p.Double().Equal(p.Add(p))
		},
		genPoint(),
	))

	properties.Property("(k1+k2)*G == k1*G + k2*G", prop.ForAll(
		func(k1, k2 ff.Element) bool {
			lhs := Generator().ScalarMul(k1.Add(k2))
			rhs := Generator().ScalarMul(k1).Add(Generator().ScalarMul(k2))
			return lhs.Equal(rhs)
		},
		genScalar(),
		genScalar(),
	))

	properties.Property("scalar results stay on the curve", prop.ForAll(
		func(p Point) bool {
			return p.IsOnCurve() && p.InSubgroup()
		},
		genPoint(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestScalarMulZero(t *testing.T) {
	require.True(t, Generator().ScalarMul(L.Zero()).IsIdentity())
}

func TestScalarMulRejectsBaseFieldScalar(t *testing.T) {
	require.Panics(t, func() {
		Generator().ScalarMul(Q.FromUint64(2))
	})
}

func TestNewPointRejectsOffCurve(t *testing.T) {
	_, err := NewPoint(Q.FromUint64(1), Q.FromUint64(1))
	require.ErrorIs(t, err, ErrNotOnCurve)
}

func TestFromXRoundTrip(t *testing.T) {
	p := pointA(t)
	recovered, err := FromX(p.X(), uint8(p.Y().Bit(0)))
	require.NoError(t, err)
	require.True(t, recovered.Equal(p))

	// the other sign bit gives the negated y
	flipped, err := FromX(p.X(), uint8(p.Y().Bit(0))^1)
	require.NoError(t, err)
	require.True(t, flipped.Y().Equal(p.Y().Neg()))
}

func TestFromYRoundTrip(t *testing.T) {
	p := pointA(t)
	recovered, err := FromY(p.Y(), uint8(p.X().Bit(0)))
	require.NoError(t, err)
	require.True(t, recovered.Equal(p))
}

func TestFromYRejectsNonResidue(t *testing.T) {
	// y=2 implies an x^2 that is not a quadratic residue
	_, err := FromY(Q.FromUint64(2), 0)
	require.ErrorIs(t, err, ErrNotOnCurve)
}

func TestHashToPoint(t *testing.T) {
	// the Pedersen basepoint input layout for tag "test", counter 0
	data := []byte("test                        0000")
	p, err := HashToPoint(data)
	require.NoError(t, err)
	require.True(t, p.IsOnCurve())
	require.True(t, p.InSubgroup())

	x, err := Q.FromString("13418723823902222986275588345615650707197303761863176429873001977640541977977")
	require.NoError(t, err)
	y, err := Q.FromString("15255921313433251341520743036334816584226787412845488772781699434149539664639")
	require.NoError(t, err)
	require.True(t, p.X().Equal(x))
	require.True(t, p.Y().Equal(y))

	again, err := HashToPoint(data)
	require.NoError(t, err)
	require.True(t, again.Equal(p))
}
