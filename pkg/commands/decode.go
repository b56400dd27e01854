package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beam-cloud/stego/pkg/chunk"
	"github.com/beam-cloud/stego/pkg/common"
)

type DecodeCmdOptions struct {
	InputPath string
	ChunkType string
}

var decodeOpts = &DecodeCmdOptions{}

var DecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Extract an embedded message from a PNG",
	RunE:  runDecode,
}

func init() {
	DecodeCmd.Flags().StringVarP(&decodeOpts.InputPath, "input", "i", "", "Input PNG (path or s3://bucket/key)")
	DecodeCmd.Flags().StringVarP(&decodeOpts.ChunkType, "type", "t", "", "4-letter chunk type the message is stored under")
	DecodeCmd.MarkFlagRequired("input")
	DecodeCmd.MarkFlagRequired("type")
}

func runDecode(cmd *cobra.Command, args []string) error {
	if _, err := chunk.TypeFromString(decodeOpts.ChunkType); err != nil {
		return err
	}

	p, err := fetchPng(cmd.Context(), decodeOpts.InputPath)
	if err != nil {
		return err
	}

	c, ok := p.ChunkByType(decodeOpts.ChunkType)
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrChunkNotFound, decodeOpts.ChunkType)
	}

	fmt.Fprintln(cmd.OutOrStdout(), c.DataString())
	return nil
}
