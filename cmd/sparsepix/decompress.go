package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sparsepix/imageio"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Restore an image file from a sparse matrix file",
	RunE:  runDecompress,
}

func init() {
	decompressCmd.Flags().StringP("input", "i", "", "Input sparse file")
	decompressCmd.Flags().StringP("output", "o", "", "Output image file (png, jpg, gif, bmp, tif)")
	decompressCmd.MarkFlagRequired("input")
	decompressCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	src, err := loadSource(inputPath)
	if err != nil {
		return err
	}

	d, err := src.dense()
	if err != nil {
		return err
	}

	if err := imageio.Save(outputPath, d); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s (%s) to %s with shape %s\n", inputPath, src.format, outputPath, d.Shape)

	return nil
}
