package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-babyjubjub"
)

var sigVerifyCmd = &cobra.Command{
	Use:   "sig-verify <public-key-hex> <message-hex> <R-hex> <S-hex>",
	Short: "Verify an EdDSA signature",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkPoint, err := decodePoint("public key", args[0])
		if err != nil {
			return err
		}
		pk, err := babyjubjub.NewPublicKey(pkPoint)
		if err != nil {
			return err
		}

		msg, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("decoding message: %w", err)
		}

		R, err := decodePoint("signature R", args[2])
		if err != nil {
			return err
		}
		S, err := babyjubjub.L.FromHex(args[3])
		if err != nil {
			return fmt.Errorf("decoding signature S: %w", err)
		}

		ok, err := pk.Verify(&babyjubjub.Signature{R: R, S: S}, msg)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("could not verify signature")
		}

		log.Info().Msg("signature verified")
		fmt.Println("OK")
		return nil
	},
}
