// Package main provides the segkit CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/segkit/internal/version"
)

const usage = `segkit - mask/prediction codec for segmentation pipelines

Usage:
  segkit <command> [flags] <args>

Commands:
  version    Show version
  convert    Pack a directory of images or masks into a dataset store
  grid       Lay out the masks of a store as one image
  verify     Check that every mask of a store survives encode/decode
  decode     Turn a store of predictions into a store of masks

Run "segkit <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "version":
		fmt.Printf("segkit %s\n", version.Version)
		return
	case "convert":
		err = runConvert(ctx, args)
	case "grid":
		err = runGrid(args)
	case "verify":
		err = runVerify(args)
	case "decode":
		err = runDecode(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "segkit: %v\n", err)
		os.Exit(1)
	}
}
