package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/beam-cloud/stego/pkg/chunk"
	"github.com/beam-cloud/stego/pkg/png"
)

type ScanCmdOptions struct {
	Dir       string
	ChunkType string
}

var scanOpts = &ScanCmdOptions{}

var ScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find PNGs under a directory that carry a given chunk type",
	RunE:  runScan,
}

func init() {
	ScanCmd.Flags().StringVarP(&scanOpts.Dir, "dir", "d", ".", "Directory to scan")
	ScanCmd.Flags().StringVarP(&scanOpts.ChunkType, "type", "t", "", "4-letter chunk type to look for")
	ScanCmd.MarkFlagRequired("type")
}

func runScan(cmd *cobra.Command, args []string) error {
	if _, err := chunk.TypeFromString(scanOpts.ChunkType); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matches := 0

	err := godirwalk.Walk(scanOpts.Dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".png") {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				log.Warn().Msgf("Unable to read %s: %v", path, err)
				return nil
			}

			p, err := png.Parse(data)
			if err != nil {
				log.Debug().Msgf("Skipping %s: %v", path, err)
				return nil
			}

			if _, ok := p.ChunkByType(scanOpts.ChunkType); ok {
				fmt.Fprintln(out, path)
				matches++
			}

			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("Found %d PNGs carrying <%s> under %s", matches, scanOpts.ChunkType, scanOpts.Dir)
	return nil
}
