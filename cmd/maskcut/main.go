// maskcut removes mesh geometry hidden under black texels of a delete mask.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/maskcut/internal/config"
	"github.com/Faultbox/maskcut/internal/logger"
	"github.com/Faultbox/maskcut/internal/scene"
	"github.com/Faultbox/maskcut/pkg/mask"
	"github.com/Faultbox/maskcut/pkg/mesh"
	"github.com/Faultbox/maskcut/pkg/prune"
)

// exitNothingToDelete is returned when the mask covers no vertex of the targets.
const exitNothingToDelete = 2

func main() {
	os.Exit(run())
}

// run executes the selected command and returns the process exit code.
// The logger is flushed before returning.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
		opts.File.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithOptions(opts); err != nil {
		return fail(err)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		return cmdInfo(args)
	case "slots":
		return cmdSlots(args)
	case "apply":
		return cmdApply(cfg, args)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`maskcut - remove mesh geometry covered by a texture delete mask

Usage:
  maskcut [-config file] [-debug] [-threshold n] [-resize] [-overwrite] <command> [options]

Commands:
  info <scene.yaml>                   Show renderer, slots and mesh statistics
  slots <scene.yaml> <material>       List slots bound to a material
  apply [options] <scene.yaml> <mask> Prune vertices under black mask texels

Apply options:
  -material name   Target every slot using this material
  -slots 0,2       Target these submesh slots (default: all)
  -size WxH        Texture size the mask must match (default: scene texture)
  -o path          Output scene (default: <scene>_pruned.yaml)

Exit status is 2 when the mask covers no vertex of the targets.

Examples:
  maskcut info body.yaml
  maskcut apply -material Shirt body.yaml shirt_mask.png
  maskcut -resize -threshold 16 apply -slots 0 body.yaml mask.tga`)
}

func cmdInfo(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maskcut info <scene.yaml>")
		return 1
	}

	s, err := scene.Load(args[0])
	if err != nil {
		return fail(err)
	}

	src := s.Source
	m := src.Mesh()
	logger.Debug("loaded scene", zap.String("path", args[0]), zap.Stringer("renderer", src.Kind()))
	materials := src.Materials()

	fmt.Printf("Scene:     %s\n", args[0])
	fmt.Printf("Renderer:  %s\n", src.Kind())
	if sk, ok := src.(*mesh.SkinnedRenderer); ok {
		fmt.Printf("Bones:     %d (root %q)\n", len(sk.Bones), sk.RootBone)
	}
	if s.Texture.Width > 0 {
		fmt.Printf("Texture:   %s %dx%d\n", s.Texture.Name, s.Texture.Width, s.Texture.Height)
	}
	fmt.Printf("Mesh:      %s\n", m.Name)
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("UV sets:   %d\n", len(m.UVs))
	fmt.Println()
	fmt.Println("Slots:")
	for i, sub := range m.Submeshes {
		material := "(none)"
		if i < len(materials) {
			material = materials[i]
		}
		fmt.Printf("  %-3d %-24s %d triangles\n", i, material, len(sub)/3)
	}

	if len(m.BlendShapes) > 0 {
		fmt.Println()
		fmt.Println("Blend shapes:")
		for _, bs := range m.BlendShapes {
			fmt.Printf("  %-24s %d frames\n", bs.Name, len(bs.Frames))
		}
	}
	return 0
}

func cmdSlots(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: maskcut slots <scene.yaml> <material>")
		return 1
	}

	s, err := scene.Load(args[0])
	if err != nil {
		return fail(err)
	}

	slots := mesh.SlotsUsingMaterial(s.Source, args[1])
	if len(slots) == 0 {
		fmt.Fprintf(os.Stderr, "Material %q is not assigned to any slot\n", args[1])
		return 1
	}
	for _, slot := range slots {
		fmt.Println(slot)
	}
	return 0
}

func cmdApply(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	material := fs.String("material", "", "Target every slot using this material")
	slotList := fs.String("slots", "", "Comma-separated submesh slots")
	size := fs.String("size", "", "Texture size as WxH")
	output := fs.String("o", "", "Output scene path")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: maskcut apply [options] <scene.yaml> <mask>")
		return 1
	}
	scenePath, maskPath := fs.Arg(0), fs.Arg(1)

	runID := zap.String("run", uuid.NewString())
	log := logger.Named("apply").With(runID)

	s, err := scene.Load(scenePath)
	if err != nil {
		return fail(err)
	}

	img, err := mask.Load(maskPath)
	if err != nil {
		return fail(err)
	}

	width, height := s.Texture.Width, s.Texture.Height
	if *size != "" {
		if width, height, err = parseSize(*size); err != nil {
			return fail(err)
		}
	}
	img, err = fitMask(img, width, height, cfg.Mask.ResizeToTexture)
	if err != nil {
		return fail(err)
	}

	dm := mask.FromImage(img, cfg.Mask.BlackThreshold)
	log.Info("loaded mask",
		zap.String("path", maskPath),
		zap.Int("width", dm.Width),
		zap.Int("height", dm.Height),
		zap.Int("marked", dm.Count()))

	opts := []prune.Option{
		prune.WithLogger(log),
		prune.WithProgress(func(percent int) bool {
			logger.Debug("progress", runID, zap.Int("percent", percent))
			return true
		}),
	}

	var res *prune.Result
	switch {
	case *material != "":
		res, err = prune.ApplyToMaterial(s.Source, dm, *material, opts...)
	default:
		var targets []int
		targets, err = parseSlots(*slotList, s.Source.Mesh().SubmeshCount())
		if err == nil {
			res, err = prune.Apply(s.Source, dm, targets, opts...)
		}
	}
	if errors.Is(err, prune.ErrNoVerticesToDelete) {
		logger.Warn("nothing to delete", runID, zap.String("mask", maskPath))
		fmt.Fprintln(os.Stderr, "Nothing to delete: the mask covers no vertex of the selected slots")
		return exitNothingToDelete
	}
	if err != nil {
		return fail(err)
	}

	outPath := *output
	if outPath == "" {
		outPath = outputPath(scenePath, cfg.Output.Suffix)
	}
	if !cfg.Output.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %s exists (use -overwrite)\n", outPath)
			return 1
		}
	}
	if err := scene.Save(outPath, s); err != nil {
		return fail(err)
	}

	m := s.Source.Mesh()
	fmt.Printf("Removed %d vertices, %d remain\n", len(res.Removed), m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	if n := res.EmptyCount(); n > 0 {
		fmt.Printf("Dropped %d empty slot(s)\n", n)
	}
	fmt.Printf("Written to %s\n", outPath)
	logger.Info("wrote scene", runID,
		zap.String("path", outPath),
		zap.Int("removed", len(res.Removed)),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("dropped_slots", res.EmptyCount()))
	return 0
}

// fail reports err on stderr and in the log and returns the error exit code.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Error("command failed", zap.Error(err))
	return 1
}

// fitMask checks the mask image against the texture size, scaling it when
// resize is set. A zero size means the image size is taken as is.
func fitMask(img image.Image, width, height int, resize bool) (image.Image, error) {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img, nil
	}
	if !resize {
		return nil, fmt.Errorf("%w: mask is %dx%d, texture is %dx%d (use -resize)",
			mask.ErrDimensionMismatch, b.Dx(), b.Dy(), width, height)
	}
	return mask.Resize(img, width, height), nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	return width, height, nil
}

// parseSlots parses a comma-separated slot list. An empty list selects
// every slot.
func parseSlots(s string, count int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		slots := make([]int, count)
		for i := range slots {
			slots[i] = i
		}
		return slots, nil
	}

	var slots []int
	for _, part := range strings.Split(s, ",") {
		slot, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid slot %q", part)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// outputPath derives the default output file from the input scene path.
func outputPath(scenePath, suffix string) string {
	ext := filepath.Ext(scenePath)
	return strings.TrimSuffix(scenePath, ext) + suffix + ext
}
