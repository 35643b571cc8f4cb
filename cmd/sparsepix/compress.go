package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sparsepix"
	"github.com/arloliu/sparsepix/container"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/imageio"
	"github.com/arloliu/sparsepix/internal/fsutil"
	"github.com/arloliu/sparsepix/sparse"
)

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Compress an image file into a sparse matrix file",
	RunE:  runCompress,
}

func init() {
	compressCmd.Flags().StringP("input", "i", "", "Input image file")
	compressCmd.Flags().StringP("output", "o", "", "Output sparse file")
	compressCmd.Flags().StringP("format", "f", "csr", "Sparse format (dok, coo, csr)")
	compressCmd.Flags().String("mode", "auto", "Pixel mode (auto, gray, rgb)")
	compressCmd.Flags().Uint32("background", 0, "Value treated as empty (packed for RGB)")
	compressCmd.Flags().String("compression", "none", "SPZ1 envelope compression (none, zstd, s2, lz4)")
	compressCmd.Flags().Bool("container", false, "Write a zip archive of per-channel planes")
	compressCmd.Flags().String("method", "deflate", "Container entry method (store, deflate, zstd)")
	compressCmd.Flags().Bool("json", false, "Write a JSON COO document")
	compressCmd.MarkFlagRequired("input")
	compressCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	modeStr, _ := cmd.Flags().GetString("mode")
	background, _ := cmd.Flags().GetUint32("background")
	compressionStr, _ := cmd.Flags().GetString("compression")
	asContainer, _ := cmd.Flags().GetBool("container")
	methodStr, _ := cmd.Flags().GetString("method")
	asJSON, _ := cmd.Flags().GetBool("json")

	kind, err := format.ParseKind(formatStr)
	if err != nil {
		return err
	}

	mode, err := imageio.ParseMode(modeStr)
	if err != nil {
		return err
	}

	compression, err := format.ParseCompression(compressionStr)
	if err != nil {
		return err
	}

	if asContainer && asJSON {
		return fmt.Errorf("--container and --json are mutually exclusive")
	}

	d, err := imageio.Load(inputPath, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %s with shape %s\n", inputPath, d.Shape)

	var nnz int
	switch {
	case asContainer:
		method, err := container.ParseMethod(methodStr)
		if err != nil {
			return err
		}

		a, err := container.SplitDense(d, kind, background)
		if err != nil {
			return err
		}
		nnz = a.NNZ()

		if _, err := container.WriteFile(outputPath, a, container.WithMethod(method)); err != nil {
			return err
		}
	default:
		m, err := sparsepix.Compress(d, kind, sparsepix.WithBackground(background))
		if err != nil {
			return err
		}
		nnz = m.NNZ()

		if asJSON {
			err = sparsepix.WriteJSONFile(outputPath, m)
		} else {
			_, err = sparsepix.WriteFile(outputPath, m, sparsepix.WithCompression(compression))
		}
		if err != nil {
			return err
		}
	}

	originalSize, err := fsutil.FileSize(inputPath)
	if err != nil {
		return err
	}

	compressedSize, err := fsutil.FileSize(outputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Stored %d non-zero entries as %s (density %.4f)\n", nnz, kind, density(nnz, d.Shape))
	fmt.Fprintf(out, "Original size:     %d bytes\n", originalSize)
	fmt.Fprintf(out, "Compressed size:   %d bytes\n", compressedSize)
	fmt.Fprintf(out, "Compression ratio: %.2fx\n", ratio(originalSize, compressedSize))

	return nil
}

func density(nnz int, shape sparse.Shape) float64 {
	return float64(nnz) / float64(shape.Cells())
}
