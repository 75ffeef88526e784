package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/maskcut/internal/config"
	"github.com/Faultbox/maskcut/internal/logger"
	"github.com/Faultbox/maskcut/internal/scene"
	"github.com/Faultbox/maskcut/pkg/mask"
)

const quadScene = `
materials: [Shirt, Skin]
texture: {width: 2, height: 2}
mesh:
  positions: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
  uvs:
    - [[0.25, 0.25], [0.75, 0.25], [0.75, 0.75], [0.25, 0.75]]
  submeshes: [[0, 1, 2], [1, 2, 3]]
`

// writeFixtures writes the quad scene and a 2x2 mask image whose black
// pixels are given in image coordinates.
func writeFixtures(t *testing.T, black ...image.Point) (scenePath, maskPath string) {
	t.Helper()
	dir := t.TempDir()

	scenePath = filepath.Join(dir, "quad.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(quadScene), 0644))

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	for _, p := range black {
		img.Set(p.X, p.Y, color.NRGBA{0, 0, 0, 255})
	}
	maskPath = filepath.Join(dir, "mask.png")
	f, err := os.Create(maskPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return scenePath, maskPath
}

// fileLogger routes the global logger to a file for the test.
func fileLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maskcut.log")
	require.NoError(t, logger.InitWithOptions(logger.Options{
		Level: "debug",
		File:  logger.DefaultFileConfig(path),
	}))
	t.Cleanup(func() {
		logger.Log = zap.NewNop()
		logger.Sugar = logger.Log.Sugar()
	})
	return path
}

func TestCmdApply(t *testing.T) {
	logPath := fileLogger(t)
	// Mask row 0 is the bottom image row, so pixel (0, 1) covers vertex 0.
	scenePath, maskPath := writeFixtures(t, image.Point{X: 0, Y: 1})
	out := filepath.Join(filepath.Dir(scenePath), "out.yaml")

	code := cmdApply(config.Default(), []string{"-o", out, scenePath, maskPath})
	require.Equal(t, 0, code)

	s, err := scene.Load(out)
	require.NoError(t, err)
	m := s.Source.Mesh()
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, [][]uint32{{0, 1, 2}}, m.Submeshes)
	assert.Equal(t, []string{"Skin"}, s.Source.Materials())

	logger.Sync()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wrote scene")

	// A second run refuses to replace the output.
	assert.Equal(t, 1, cmdApply(config.Default(), []string{"-o", out, scenePath, maskPath}))
}

func TestCmdApplyExitCodes(t *testing.T) {
	logPath := fileLogger(t)
	scenePath, maskPath := writeFixtures(t)
	out := filepath.Join(filepath.Dir(scenePath), "out.yaml")

	assert.Equal(t, exitNothingToDelete, cmdApply(config.Default(), []string{"-o", out, scenePath, maskPath}))
	assert.NoFileExists(t, out)

	assert.Equal(t, 1, cmdApply(config.Default(), []string{scenePath, filepath.Join(t.TempDir(), "missing.png")}))
	assert.Equal(t, 1, cmdApply(config.Default(), []string{"-size", "4x4", scenePath, maskPath}))
	assert.Equal(t, 1, cmdApply(config.Default(), []string{scenePath}))

	logger.Sync()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nothing to delete")
	assert.Contains(t, string(data), "command failed")
}

func TestCmdInfoAndSlots(t *testing.T) {
	scenePath, _ := writeFixtures(t)

	assert.Equal(t, 0, cmdInfo([]string{scenePath}))
	assert.Equal(t, 1, cmdInfo(nil))
	assert.Equal(t, 0, cmdSlots([]string{scenePath, "Skin"}))
	assert.Equal(t, 1, cmdSlots([]string{scenePath, "Hair"}))
	assert.Equal(t, 1, cmdSlots([]string{filepath.Join(t.TempDir(), "missing.yaml"), "Skin"}))
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("512x256")
	require.NoError(t, err)
	assert.Equal(t, 512, w)
	assert.Equal(t, 256, h)

	w, h, err = parseSize("64X64")
	require.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)

	for _, bad := range []string{"", "512", "x512", "0x4", "ax4", "4x-1"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSlots(t *testing.T) {
	slots, err := parseSlots("", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, slots)

	slots, err = parseSlots("2, 0", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, slots)

	_, err = parseSlots("1,two", 3)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "scenes/body_pruned.yaml", outputPath("scenes/body.yaml", "_pruned"))
	assert.Equal(t, "body.cut", outputPath("body", ".cut"))
}

func TestFitMask(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	got, err := fitMask(img, 4, 4, false)
	require.NoError(t, err)
	assert.Same(t, img, got)

	got, err = fitMask(img, 0, 0, false)
	require.NoError(t, err)
	assert.Same(t, img, got)

	_, err = fitMask(img, 8, 8, false)
	assert.True(t, errors.Is(err, mask.ErrDimensionMismatch))

	got, err = fitMask(img, 8, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())
}
