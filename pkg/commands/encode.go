package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/beam-cloud/stego/pkg/chunk"
)

type EncodeCmdOptions struct {
	InputPath  string
	OutputPath string
	ChunkType  string
	Message    string
}

var encodeOpts = &EncodeCmdOptions{}

var EncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Embed a message chunk into a PNG",
	RunE:  runEncode,
}

func init() {
	EncodeCmd.Flags().StringVarP(&encodeOpts.InputPath, "input", "i", "", "Input PNG (path or s3://bucket/key)")
	EncodeCmd.Flags().StringVarP(&encodeOpts.OutputPath, "output", "o", "", "Output PNG (defaults to input)")
	EncodeCmd.Flags().StringVarP(&encodeOpts.ChunkType, "type", "t", "", "4-letter chunk type to store the message under")
	EncodeCmd.Flags().StringVarP(&encodeOpts.Message, "message", "m", "", "Message to embed")
	EncodeCmd.MarkFlagRequired("input")
	EncodeCmd.MarkFlagRequired("type")
	EncodeCmd.MarkFlagRequired("message")
}

func runEncode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	typ, err := chunk.TypeFromString(encodeOpts.ChunkType)
	if err != nil {
		return err
	}

	p, err := fetchPng(ctx, encodeOpts.InputPath)
	if err != nil {
		return err
	}

	p.AppendChunk(chunk.New(typ, []byte(encodeOpts.Message)))

	outputPath := encodeOpts.OutputPath
	if outputPath == "" {
		outputPath = encodeOpts.InputPath
	}

	if err := writePng(ctx, outputPath, p); err != nil {
		return err
	}

	log.Info().Msgf("Embedded %d byte message under <%s> in %s", len(encodeOpts.Message), typ, outputPath)
	return nil
}
