package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/RockPolish/gbapack"
	"github.com/RockPolish/gbapack/bios"
)

func main() {
	app := &cli.App{
		Name:      "gbapack",
		Usage:     "Compress files into the GBA BIOS decompression formats",
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "rle", Usage: "use the BIOS RLE format"},
			&cli.BoolFlag{Name: "lz77", Usage: "use the BIOS LZ77 format"},
			&cli.BoolFlag{Name: "huffman", Usage: "use the BIOS Huffman format (8-bit symbols)"},
			&cli.BoolFlag{Name: "huffman4", Usage: "use the BIOS Huffman format (4-bit symbols)"},
			&cli.BoolFlag{Name: "vram", Aliases: []string{"v"}, Usage: "ensure 16-bit routines can decompress it (only affects LZ77)"},
		},
		Action: compressFile,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err)
	}
}

func compressFile(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected INPUT and OUTPUT arguments, got %d", c.NArg())
	}

	method, err := selectedMethod(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}

	// The BIOS routines write whole words, so the decompressed size has to
	// be a multiple of 4.
	if pad := len(data) % 4; pad != 0 {
		log.Printf("warning: input length is not a multiple of 4, padding with zeroes")
		data = append(data, make([]byte, 4-pad)...)
	}

	out, err := bios.Compress(data, method, c.Bool("vram"))
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Args().Get(1), out, 0o644); err != nil {
		return err
	}

	log.Printf("compressed %d bytes to %d bytes (%s)", len(data), len(out), method)
	return nil
}

func selectedMethod(c *cli.Context) (gbapack.Method, error) {
	var (
		method gbapack.Method
		count  int
	)
	for flag, m := range map[string]gbapack.Method{
		"rle":      gbapack.RLE,
		"lz77":     gbapack.LZ77,
		"huffman":  gbapack.Huffman8,
		"huffman4": gbapack.Huffman4,
	} {
		if c.Bool(flag) {
			method = m
			count++
		}
	}
	switch count {
	case 0:
		return 0, fmt.Errorf("no compression method selected")
	case 1:
		return method, nil
	}
	return 0, fmt.Errorf("more than one compression method selected")
}
