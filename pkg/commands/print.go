package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type PrintCmdOptions struct {
	InputPath string
}

var printOpts = &PrintCmdOptions{}

var PrintCmd = &cobra.Command{
	Use:   "print",
	Short: "List the chunks of a PNG",
	RunE:  runPrint,
}

func init() {
	PrintCmd.Flags().StringVarP(&printOpts.InputPath, "input", "i", "", "Input PNG (path or s3://bucket/key)")
	PrintCmd.MarkFlagRequired("input")
}

func runPrint(cmd *cobra.Command, args []string) error {
	p, err := fetchPng(cmd.Context(), printOpts.InputPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, c := range p.Chunks() {
		typ := c.Type()
		fmt.Fprintf(out, "%3d %s length=%d crc=%08x critical=%t public=%t safe_to_copy=%t\n",
			i, typ, c.Length(), c.Crc(), typ.IsCritical(), typ.IsPublic(), typ.IsSafeToCopy())
	}

	return nil
}
