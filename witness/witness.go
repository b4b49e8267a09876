// Package witness formats core values into the textual witness encoding
// consumed by the downstream circuit compiler.
//
// The core only ever exposes canonical values, so tokens are emitted
// verbatim: one decimal string per field element, two per point, with no
// re-reduction or reinterpretation on this side of the boundary.
package witness

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/athanorlabs/go-babyjubjub"
	"github.com/athanorlabs/go-babyjubjub/ff"
)

// MessageSize is the message length the signature-verification circuit
// expects: two 256-bit halves.
const MessageSize = 64

// Element returns the witness token for a field or scalar element.
func Element(e ff.Element) string {
	return e.String()
}

// Point returns the two witness tokens for a point's affine coordinates,
// x first.
func Point(p babyjubjub.Point) []string {
	return []string{p.X().String(), p.Y().String()}
}

// SignatureTokens returns the input tokens for the circuit's verifyEddsa
// gadget, in its declared order:
//
//	R.x R.y S A.x A.y M0[0..7] M1[0..7]
//
// where the 64-byte message is split into sixteen big-endian u32 words.
func SignatureTokens(pk *babyjubjub.PublicKey, sig *babyjubjub.Signature, msg []byte) ([]string, error) {
	if len(msg) != MessageSize {
		return nil, fmt.Errorf("witness: message must be %d bytes, got %d", MessageSize, len(msg))
	}

	tokens := make([]string, 0, 5+MessageSize/4)
	tokens = append(tokens, Point(sig.R)...)
	tokens = append(tokens, Element(sig.S))
	tokens = append(tokens, Point(pk.Point())...)
	for i := 0; i < len(msg); i += 4 {
		word := binary.BigEndian.Uint32(msg[i : i+4])
		tokens = append(tokens, strconv.FormatUint(uint64(word), 10))
	}
	return tokens, nil
}

// WriteSignature writes the verifyEddsa token stream to w, space-separated
// on a single line.
func WriteSignature(w io.Writer, pk *babyjubjub.PublicKey, sig *babyjubjub.Signature, msg []byte) error {
	tokens, err := SignatureTokens(pk, sig, msg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.Join(tokens, " "))
	return err
}
