package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sparsepix"
	"github.com/arloliu/sparsepix/imageio"
	"github.com/arloliu/sparsepix/sparse"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())

	return out.String()
}

func TestCLI_EndToEnd(t *testing.T) {
	t.Cleanup(func() { sparsepix.SetLogger(nil) })

	dir := t.TempDir()
	src := filepath.Join(dir, "input.png")

	d, err := sparse.NewDense(sparse.Shape{Height: 8, Width: 6, Channels: 3})
	require.NoError(t, err)
	d.SetValue(1, 1, 660510)
	d.SetValue(7, 5, 255)
	require.NoError(t, imageio.Save(src, d))

	spc := filepath.Join(dir, "input.spc")
	out := execute(t, "compress", "-i", src, "-o", spc, "--format", "coo", "--compression", "zstd")
	require.Contains(t, out, "Stored 2 non-zero entries as COO")
	require.Contains(t, out, "Compression ratio:")

	out = execute(t, "info", spc)
	require.Contains(t, out, "SPZ1")
	require.Contains(t, out, "NNZ:       2")

	rotated := filepath.Join(dir, "rotated.spc")
	out = execute(t, "transform", "-i", spc, "-o", rotated, "--rotate", "1")
	require.Contains(t, out, "rotate 1")

	restored := filepath.Join(dir, "restored.png")
	execute(t, "decompress", "-i", rotated, "-o", restored)

	got, err := imageio.Load(restored, imageio.ModeRGB)
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{Height: 6, Width: 8, Channels: 3}, got.Shape)
	require.Equal(t, uint32(660510), got.Value(1, 6))
	require.Equal(t, uint32(255), got.Value(5, 0))

	out = execute(t, "bench", src)
	require.Contains(t, out, "RATIO")
	require.Contains(t, out, "CSR")
}
