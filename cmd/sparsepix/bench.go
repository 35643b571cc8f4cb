package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sparsepix/bench"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/imageio"
	"github.com/arloliu/sparsepix/internal/fsutil"
)

var benchCmd = &cobra.Command{
	Use:   "bench [files...]",
	Short: "Compare DOK, COO and CSR on one or more images",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().String("mode", "auto", "Pixel mode (auto, gray, rgb)")
	benchCmd.Flags().String("compression", "none", "SPZ1 envelope compression (none, zstd, s2, lz4)")
	benchCmd.Flags().Uint32("background", 0, "Value treated as empty (packed for RGB)")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	modeStr, _ := cmd.Flags().GetString("mode")
	compressionStr, _ := cmd.Flags().GetString("compression")
	background, _ := cmd.Flags().GetUint32("background")

	mode, err := imageio.ParseMode(modeStr)
	if err != nil {
		return err
	}

	compression, err := format.ParseCompression(compressionStr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range args {
		d, err := imageio.Load(path, mode)
		if err != nil {
			return err
		}

		size, err := fsutil.FileSize(path)
		if err != nil {
			return err
		}

		results, err := bench.Run(d, size, bench.WithCompression(compression), bench.WithBackground(background))
		if err != nil {
			return fmt.Errorf("benchmarking %s: %w", path, err)
		}

		fmt.Fprintf(out, "\n%s (%s, %d bytes)\n", path, d.Shape, size)
		if err := bench.WriteTable(out, results); err != nil {
			return err
		}
	}

	return nil
}
