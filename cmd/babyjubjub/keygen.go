package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-babyjubjub"
)

var keygenFromPrivate string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a private/public keypair, printed as hex",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			sk  *babyjubjub.PrivateKey
			err error
		)
		if keygenFromPrivate != "" {
			s, err := babyjubjub.L.FromHex(keygenFromPrivate)
			if err != nil {
				return fmt.Errorf("decoding private key: %w", err)
			}
			sk, err = babyjubjub.NewPrivateKeyFromScalar(s)
			if err != nil {
				return err
			}
		} else {
			sk, err = babyjubjub.GeneratePrivateKey(nil)
			if err != nil {
				return err
			}
		}

		pk := sk.Public()
		log.Info().Msg("PrivateKey PublicKey")
		fmt.Printf("%x %s\n", sk.Scalar().Bytes(), hex.EncodeToString(pk.Point().Compress()))
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&keygenFromPrivate, "from-private", "", "derive the public key from an existing private key (hex)")
}
