package babyjubjub

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-babyjubjub/ff"
)

func TestCompressFixedVector(t *testing.T) {
	pk := testPrivateKey(t).Public()
	require.Equal(t,
		"a4da398ed1996eae6dafb3a687806e3a49c3add6949774d6017b30a66b2503ce",
		hex.EncodeToString(pk.Point().Compress()),
	)

	decoded, err := Decompress(pk.Point().Compress())
	require.NoError(t, err)
	require.True(t, decoded.Equal(pk.Point()))
}

func TestCompressRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("decompress(compress(P)) == P", prop.ForAll(
		func(p Point) bool {
			decoded, err := Decompress(p.Compress())
			if err != nil {
				return false
			}
			return decoded.Equal(p)
		},
		genPoint(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecompressRejectsBadInput(t *testing.T) {
	// y=2 has no corresponding x on the curve
	bad := make([]byte, CompressedSize)
	bad[CompressedSize-1] = 2
	_, err := Decompress(bad)
	require.ErrorIs(t, err, ErrNotOnCurve)

	// non-canonical y >= Q
	nonCanonical := make([]byte, CompressedSize)
	Q.Prime().FillBytes(nonCanonical)
	_, err = Decompress(nonCanonical)
	require.ErrorIs(t, err, ff.ErrNonCanonical)

	_, err = Decompress(bad[1:])
	require.ErrorIs(t, err, ff.ErrNonCanonical)
}

func TestSignatureSerde(t *testing.T) {
	sk := testPrivateKey(t)
	digest := sha512.Sum512([]byte("This is my secret message"))
	sig, err := sk.Sign(digest[:])
	require.NoError(t, err)

	ser := sig.Serialize()
	require.Len(t, ser, SignatureSize)
	require.Equal(t,
		"aa1b6b3259214ca2695b0832625e1d93a9d30940f0f6486716830bf15b03b5f0",
		hex.EncodeToString(ser[:CompressedSize]),
	)

	deser, err := DeserializeSignature(ser)
	require.NoError(t, err)
	require.True(t, deser.R.Equal(sig.R))
	require.True(t, deser.S.Equal(sig.S))

	ok, err := sk.Public().Verify(deser, digest[:])
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDeserializeSignatureRejectsBadInput(t *testing.T) {
	sk := testPrivateKey(t)
	sig, err := sk.Sign([]byte("message"))
	require.NoError(t, err)
	ser := sig.Serialize()

	// truncated
	_, err = DeserializeSignature(ser[:SignatureSize-1])
	require.ErrorIs(t, err, ErrInvalidSignature)

	// off-curve R (y=2 has no x)
	badR := append([]byte(nil), ser...)
	for i := 0; i < CompressedSize-1; i++ {
		badR[i] = 0
	}
	badR[CompressedSize-1] = 2
	_, err = DeserializeSignature(badR)
	require.ErrorIs(t, err, ErrInvalidSignature)

	// S outside [0, L)
	badS := append([]byte(nil), ser...)
	L.Prime().FillBytes(badS[CompressedSize:])
	_, err = DeserializeSignature(badS)
	require.ErrorIs(t, err, ErrInvalidSignature)
}
