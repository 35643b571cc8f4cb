package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sparsepix/internal/fsutil"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Inspect a sparse matrix file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	size, err := fsutil.FileSize(path)
	if err != nil {
		return err
	}

	src, err := loadSource(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:      %s\n", path)
	fmt.Fprintf(out, "Layout:    %s\n", src.format)
	fmt.Fprintf(out, "File size: %d bytes\n", size)

	planes := src.planes()
	first := planes[0]
	fmt.Fprintf(out, "Format:    %s\n", first.Kind())

	if src.archive != nil {
		fmt.Fprintf(out, "Shape:     %s\n", src.archive.ImageShape())
		fmt.Fprintf(out, "Dtype:     %s\n", src.archive.ValueType)
		fmt.Fprintf(out, "Planes:    %d\n", len(planes))
		for i, m := range planes {
			fmt.Fprintf(out, "  plane %d: nnz %d, density %.4f\n", i, m.NNZ(), density(m.NNZ(), m.Shape()))
		}

		return nil
	}

	fmt.Fprintf(out, "Shape:     %s\n", first.Shape())
	fmt.Fprintf(out, "NNZ:       %d\n", first.NNZ())
	fmt.Fprintf(out, "Density:   %.4f\n", density(first.NNZ(), first.Shape()))

	return nil
}
