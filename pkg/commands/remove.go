package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type RemoveCmdOptions struct {
	InputPath  string
	OutputPath string
	ChunkType  string
}

var removeOpts = &RemoveCmdOptions{}

var RemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the first chunk of the given type from a PNG",
	RunE:  runRemove,
}

func init() {
	RemoveCmd.Flags().StringVarP(&removeOpts.InputPath, "input", "i", "", "Input PNG (path or s3://bucket/key)")
	RemoveCmd.Flags().StringVarP(&removeOpts.OutputPath, "output", "o", "", "Output PNG (defaults to input)")
	RemoveCmd.Flags().StringVarP(&removeOpts.ChunkType, "type", "t", "", "4-letter chunk type to remove")
	RemoveCmd.MarkFlagRequired("input")
	RemoveCmd.MarkFlagRequired("type")
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := fetchPng(ctx, removeOpts.InputPath)
	if err != nil {
		return err
	}

	removed, err := p.RemoveFirstChunk(removeOpts.ChunkType)
	if err != nil {
		return err
	}

	outputPath := removeOpts.OutputPath
	if outputPath == "" {
		outputPath = removeOpts.InputPath
	}

	if err := writePng(ctx, outputPath, p); err != nil {
		return err
	}

	log.Info().Msgf("Removed <%s> chunk (%d bytes) from %s", removed.Type(), removed.Length(), outputPath)
	return nil
}
