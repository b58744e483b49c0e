package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/born-ml/segkit/backend/cpu"
	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/config"
	"github.com/born-ml/segkit/internal/dataset"
	"github.com/born-ml/segkit/internal/grid"
	"github.com/born-ml/segkit/internal/imageio"
	"github.com/born-ml/segkit/internal/logger"
	"github.com/born-ml/segkit/internal/preprocess"
	"github.com/born-ml/segkit/internal/tensor"
)

// env is what every subcommand needs after flag parsing.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	backend *cpu.Backend
	codec   *codec.Codec[*cpu.Backend]
}

func newFlagSet(name, args string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "YAML config file (SEGKIT_* environment variables override it)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: segkit %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs, path
}

func setup(configPath string, strict bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	var log zerolog.Logger
	if cfg.Log.Console {
		log = logger.NewConsole(level)
	} else {
		log = logger.New(os.Stderr, level)
	}

	mode := cfg.ValidationMode()
	if strict {
		mode = codec.Strict
	}

	backend := cpu.NewWithWorkers(cfg.Dataset.Workers)
	c, err := codec.New(cfg.Codec, backend,
		codec.WithValidation(mode),
		codec.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, backend: backend, codec: c}, nil
}

func oneArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("expected exactly one %s", what)
	}
	return fs.Arg(0), nil
}

func runConvert(ctx context.Context, args []string) error {
	fs, configPath := newFlagSet("convert", "<dir>")
	masks := fs.Bool("masks", false, "binarize every image with codec.mask_binary_threshold")
	resize := fs.Bool("resize", false, "resize images to codec.img_width x codec.img_height, keeping aspect ratio")
	key := fs.String("key", "", "tensor name in the store (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, err := oneArg(fs, "directory")
	if err != nil {
		return err
	}

	e, err := setup(*configPath, false)
	if err != nil {
		return err
	}

	opts := []dataset.ConverterOption{
		dataset.WithLogger(e.log),
	}
	if e.cfg.Dataset.Workers > 0 {
		opts = append(opts, dataset.WithWorkers(e.cfg.Dataset.Workers))
	}
	if *resize {
		r := preprocess.NewAspectResizer(e.cfg.Codec.ImgWidth, e.cfg.Codec.ImgHeight)
		opts = append(opts, dataset.WithReader(func(path string) (*tensor.RawTensor, error) {
			img, err := imageio.ReadGray(path)
			if err != nil {
				return nil, err
			}
			return r.ResizeTensor(img)
		}))
	}

	storeKey := e.cfg.Dataset.Key
	if *key != "" {
		storeKey = *key
	}

	out, err := dataset.NewConverter(e.codec, opts...).Convert(ctx, dir, dataset.ConvertOptions{
		Exts:   e.cfg.Dataset.Extensions,
		Key:    storeKey,
		Ext:    e.cfg.Dataset.Ext,
		IsMask: *masks,
	})
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

func runGrid(args []string) error {
	fs, configPath := newFlagSet("grid", "<store>")
	cols := fs.Int("cols", 0, "grid columns (default grid.columns)")
	out := fs.String("out", "", "save the grid to this path (.png is appended)")
	show := fs.Bool("show", false, "show the grid in a window")
	crop := fs.Bool("crop", false, "remove preprocess.crop_height/crop_width borders first")
	limit := fs.Int("limit", 0, "use only the first n masks")
	key := fs.String("key", "", "tensor name in the store (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "store")
	if err != nil {
		return err
	}

	e, err := setup(*configPath, false)
	if err != nil {
		return err
	}

	masks, err := dataset.LoadGroundTruths(path, pick(*key, e.cfg.Dataset.Key), e.backend)
	if err != nil {
		return err
	}
	if *limit > 0 && *limit < masks.Shape()[0] {
		masks = masks.Narrow(0, 0, *limit)
	}
	if *crop {
		masks, err = preprocess.Crop(masks, e.cfg.Preprocess.CropHeight, e.cfg.Preprocess.CropWidth)
		if err != nil {
			return err
		}
	}

	k := e.cfg.Grid.Columns
	if *cols > 0 {
		k = *cols
	}

	window := imageio.NewWindow()
	defer func() { _ = window.Close() }()

	img, err := grid.Group(masks, k, grid.GroupOptions{
		Fill:     uint8(e.cfg.Grid.Fill), //nolint:gosec // validated to [0, 255] by config
		SavePath: *out,
		Show:     *show,
		Title:    path,
	}, window)
	if err != nil {
		return err
	}

	e.log.Info().
		Str("store", path).
		Int("images", masks.Shape()[0]).
		Int("cols", k).
		Ints("shape", img.Shape()).
		Msg("grid composed")
	return nil
}

func runVerify(args []string) error {
	fs, configPath := newFlagSet("verify", "<store>")
	strict := fs.Bool("strict", false, "reject masks with intensities other than background and foreground")
	layoutName := fs.String("layout", "", "spatial or flattened (default decode.layout)")
	key := fs.String("key", "", "tensor name in the store (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs, "store")
	if err != nil {
		return err
	}

	e, err := setup(*configPath, *strict)
	if err != nil {
		return err
	}

	layout := e.cfg.Layout()
	if *layoutName != "" {
		if layout, err = codec.ParseLayout(*layoutName); err != nil {
			return err
		}
	}

	masks, err := dataset.LoadGroundTruths(path, pick(*key, e.cfg.Dataset.Key), e.backend)
	if err != nil {
		return err
	}

	onehot, err := e.codec.Encode(masks, layout)
	if err != nil {
		return err
	}
	if err := e.codec.CheckOneHot(onehot); err != nil {
		return err
	}

	pred := tensor.New[float32](e.backend.Cast(onehot.Raw(), tensor.Float32), e.backend)
	back, err := e.codec.Decode(pred, layout, e.cfg.Decode.Threshold)
	if err != nil {
		return err
	}

	// Permissive encoding maps third intensities to foreground, so the
	// round trip only holds for masks that were binarized.
	if !bytes.Equal(back.Data(), masks.Data()) {
		return errors.New("decoded masks differ from the stored masks; the store holds intensities other than background and foreground")
	}

	e.log.Info().
		Str("store", path).
		Str("layout", layout.String()).
		Ints("shape", onehot.Shape()).
		Msg("masks verified")
	return nil
}

func runDecode(args []string) error {
	fs, configPath := newFlagSet("decode", "<predictions> <output>")
	key := fs.String("key", "pred", "prediction tensor name in the input store")
	layoutName := fs.String("layout", "", "spatial or flattened (default decode.layout)")
	argmax := fs.Bool("argmax", false, "decode by argmax over all classes instead of thresholding the foreground channel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("expected an input and an output store")
	}
	in, out := fs.Arg(0), fs.Arg(1)

	e, err := setup(*configPath, false)
	if err != nil {
		return err
	}

	layout := e.cfg.Layout()
	if *layoutName != "" {
		if layout, err = codec.ParseLayout(*layoutName); err != nil {
			return err
		}
	}

	r, err := dataset.Open(in)
	if err != nil {
		return err
	}
	raw, err := r.Load(*key)
	_ = r.Close()
	if err != nil {
		return err
	}
	if raw.DType() != tensor.Float32 {
		raw = e.backend.Cast(raw, tensor.Float32)
	}
	pred := tensor.New[float32](raw, e.backend)

	var masks *tensor.Tensor[uint8, *cpu.Backend]
	if *argmax {
		masks, err = e.codec.DecodeArgmax(pred, layout)
	} else {
		masks, err = e.codec.Decode(pred, layout, e.cfg.Decode.Threshold)
	}
	if err != nil {
		return err
	}

	w, err := dataset.NewWriter(out)
	if err != nil {
		return err
	}
	err = w.Write(map[string]*tensor.RawTensor{e.cfg.Dataset.Key: masks.Raw()}, dataset.WriteOptions{
		Masks: !*argmax,
		Metadata: map[string]string{
			"source": in,
			"layout": layout.String(),
		},
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	e.log.Info().
		Str("input", in).
		Str("output", out).
		Ints("shape", masks.Shape()).
		Msg("predictions decoded")
	return nil
}

func pick(flagValue, fallback string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return fallback
}
