// Command babyjubjub is the command-line surface over the core primitives:
// Pedersen hashing, EdDSA key generation, signing and verification. It only
// decodes text into core types and prints results; all cryptographic logic
// lives in the library packages.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-babyjubjub"
	"github.com/athanorlabs/go-babyjubjub/logger"
)

var log = logger.Logger()

var rootCmd = &cobra.Command{
	Use:           "babyjubjub",
	Short:         "Baby Jubjub reference computations for zero-knowledge circuits",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(batchHashCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(sigGenCmd)
	rootCmd.AddCommand(sigVerifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// decodePoint decodes a hex-encoded compressed point.
func decodePoint(what, s string) (babyjubjub.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return babyjubjub.Point{}, fmt.Errorf("decoding %s: %w", what, err)
	}
	p, err := babyjubjub.Decompress(b)
	if err != nil {
		return babyjubjub.Point{}, fmt.Errorf("decoding %s: %w", what, err)
	}
	return p, nil
}
