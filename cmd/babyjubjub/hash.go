package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/athanorlabs/go-babyjubjub/pedersen"
)

var (
	hashTag  string
	hashSize int
)

var hashCmd = &cobra.Command{
	Use:   "hash <hex-preimage>",
	Short: "Compute a Pedersen hash of a fixed-size preimage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hasher, err := newHasher()
		if err != nil {
			return err
		}

		preimage, err := decodePreimage(args[0])
		if err != nil {
			return err
		}

		digest, err := hasher.HashBytes(preimage)
		if err != nil {
			return err
		}

		log.Info().Str("tag", hashTag).Int("bytes", hashSize).Msg("hash digest")
		fmt.Println(hex.EncodeToString(digest.Compress()))
		return nil
	},
}

var batchHashCmd = &cobra.Command{
	Use:   "batch-hash",
	Short: "Pedersen-hash hex preimages read from stdin, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hasher, err := newHasher()
		if err != nil {
			return err
		}

		var lines []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "exit" {
				break
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		// the hasher's table is read-only, so hashing independent inputs
		// needs no coordination
		digests := make([]string, len(lines))
		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())
		for i, line := range lines {
			i, line := i, line
			g.Go(func() error {
				preimage, err := decodePreimage(line)
				if err != nil {
					return err
				}
				digest, err := hasher.HashBytes(preimage)
				if err != nil {
					return err
				}
				digests[i] = hex.EncodeToString(digest.Compress())
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		log.Info().Int("count", len(digests)).Msg("batch hashed")
		for _, d := range digests {
			fmt.Println(d)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{hashCmd, batchHashCmd} {
		cmd.Flags().StringVarP(&hashTag, "personalization", "p", "test", "personalization tag for the generator table")
		cmd.Flags().IntVarP(&hashSize, "size", "s", 64, "preimage size in bytes")
	}
}

func newHasher() (*pedersen.Hasher, error) {
	return pedersen.NewHasher([]byte(hashTag), pedersen.SegmentsForBytes(hashSize))
}

func decodePreimage(s string) ([]byte, error) {
	preimage, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding preimage: %w", err)
	}
	if len(preimage) != hashSize {
		return nil, fmt.Errorf("bad length for preimage: %d vs %d", len(preimage), hashSize)
	}
	return preimage, nil
}
