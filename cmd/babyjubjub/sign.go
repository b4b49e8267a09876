package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-babyjubjub"
	"github.com/athanorlabs/go-babyjubjub/witness"
)

var sigGenWitnessPath string

var sigGenCmd = &cobra.Command{
	Use:   "sig-gen <private-key-hex> <message-hex>",
	Short: "Sign a message, printing the signature as hex (R S)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := babyjubjub.L.FromHex(args[0])
		if err != nil {
			return fmt.Errorf("decoding private key: %w", err)
		}
		sk, err := babyjubjub.NewPrivateKeyFromScalar(s)
		if err != nil {
			return err
		}

		msg, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("decoding message: %w", err)
		}

		sig, err := sk.Sign(msg)
		if err != nil {
			return err
		}

		if sigGenWitnessPath != "" {
			if err := writeWitness(sigGenWitnessPath, sk.Public(), sig, msg); err != nil {
				return err
			}
			log.Info().Str("path", sigGenWitnessPath).Msg("wrote verifyEddsa witness")
		}

		log.Info().Msg("Signature_R Signature_S")
		fmt.Printf("%s %x\n", hex.EncodeToString(sig.R.Compress()), sig.S.Bytes())
		return nil
	},
}

func init() {
	sigGenCmd.Flags().StringVar(&sigGenWitnessPath, "witness", "", "also write the verifyEddsa witness tokens to this file")
}

func writeWitness(path string, pk *babyjubjub.PublicKey, sig *babyjubjub.Signature, msg []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return witness.WriteSignature(f, pk, sig, msg)
}
