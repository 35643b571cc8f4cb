package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sparsepix"
	"github.com/arloliu/sparsepix/container"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/sparse"
	"github.com/arloliu/sparsepix/transform"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Crop, rotate or flip a sparse matrix file without densifying it",
	RunE:  runTransform,
}

func init() {
	transformCmd.Flags().StringP("input", "i", "", "Input sparse file")
	transformCmd.Flags().StringP("output", "o", "", "Output sparse file")
	transformCmd.Flags().String("crop", "", "Crop box x1,y1,x2,y2 (end exclusive)")
	transformCmd.Flags().Int("rotate", 0, "Clockwise quarter turns")
	transformCmd.Flags().String("flip", "", "Flip axis (vertical, horizontal)")
	transformCmd.Flags().String("compression", "none", "SPZ1 envelope compression for single-matrix output")
	transformCmd.MarkFlagRequired("input")
	transformCmd.MarkFlagRequired("output")
	transformCmd.MarkFlagsMutuallyExclusive("crop", "rotate", "flip")
	transformCmd.MarkFlagsOneRequired("crop", "rotate", "flip")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	compressionStr, _ := cmd.Flags().GetString("compression")

	compression, err := format.ParseCompression(compressionStr)
	if err != nil {
		return err
	}

	op, desc, err := transformOp(cmd)
	if err != nil {
		return err
	}

	src, err := loadSource(inputPath)
	if err != nil {
		return err
	}

	planes := src.planes()
	results := make([]sparse.Matrix, len(planes))
	for i, m := range planes {
		if results[i], err = op(m); err != nil {
			return err
		}
	}

	if src.archive != nil {
		a, err := container.New(results...)
		if err != nil {
			return err
		}

		if _, err := container.WriteFile(outputPath, a); err != nil {
			return err
		}
	} else if _, err := sparsepix.WriteFile(outputPath, results[0], sparsepix.WithCompression(compression)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s: %s -> %s, shape %s -> %s\n",
		desc, inputPath, outputPath, planes[0].Shape(), results[0].Shape())

	return nil
}

func transformOp(cmd *cobra.Command) (func(sparse.Matrix) (sparse.Matrix, error), string, error) {
	flags := cmd.Flags()

	switch {
	case flags.Changed("crop"):
		s, _ := flags.GetString("crop")
		box, err := transform.ParseBox(s)
		if err != nil {
			return nil, "", err
		}

		return func(m sparse.Matrix) (sparse.Matrix, error) { return transform.Crop(m, box) }, "crop " + box.String(), nil
	case flags.Changed("rotate"):
		turns, _ := flags.GetInt("rotate")

		return func(m sparse.Matrix) (sparse.Matrix, error) { return transform.Rotate(m, turns) },
			fmt.Sprintf("rotate %d", turns), nil
	default:
		s, _ := flags.GetString("flip")
		axis, err := transform.ParseAxis(s)
		if err != nil {
			return nil, "", err
		}

		return func(m sparse.Matrix) (sparse.Matrix, error) { return transform.Flip(m, axis) }, "flip " + axis.String(), nil
	}
}
