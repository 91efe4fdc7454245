//go:build ignore

// This program generates the DDS fixtures embedded by resourcegen.
// Run with: go run generate.go [output_dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xaphier/Eternal-Lands/pkg/dds"
)

const (
	width   = 32
	height  = 32
	mipmaps = 5
)

// Same order as the codec tests: DXT1, DXT3, DXT5, RGB8, RGBA8, RGBA4,
// R5G6B5, RGB5_A1, RGB10_A2, R3G3B2, R8, R8 (luminance), RG8, RGTC1, RGTC2.
var formats = []dds.PixelFormat{
	dds.FourCCFormat(dds.FourCCDXT1),
	dds.FourCCFormat(dds.FourCCDXT3),
	dds.FourCCFormat(dds.FourCCDXT5),
	dds.MaskFormat(dds.PFRGB, 24, 0x00ff0000, 0x0000ff00, 0x000000ff, 0),
	dds.MaskFormat(dds.PFRGB, 32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000),
	dds.MaskFormat(dds.PFRGB, 16, 0x0f00, 0x00f0, 0x000f, 0xf000),
	dds.MaskFormat(dds.PFRGB, 16, 0xf800, 0x07e0, 0x001f, 0),
	dds.MaskFormat(dds.PFRGB, 16, 0x7c00, 0x03e0, 0x001f, 0x8000),
	dds.MaskFormat(dds.PFRGB, 32, 0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000),
	dds.MaskFormat(dds.PFRGB, 8, 0xe0, 0x1c, 0x03, 0),
	dds.MaskFormat(dds.PFRGB, 8, 0xff, 0, 0, 0),
	dds.MaskFormat(dds.PFLuminance, 8, 0xff, 0, 0, 0),
	dds.MaskFormat(dds.PFRGB, 16, 0x00ff, 0xff00, 0, 0),
	dds.FourCCFormat(dds.FourCCATI1),
	dds.FourCCFormat(dds.FourCCATI2),
}

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	for i, pf := range formats {
		f := dds.NewFile(width, height, mipmaps, pf)

		header, err := f.MarshalBinary()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding header %d: %v\n", i, err)
			os.Exit(1)
		}

		// Deterministic surface data so the fixtures are reproducible.
		data := make([]byte, f.DataSize)
		for j := range data {
			data[j] = byte((j*31 + i*7) ^ (j >> 5))
		}

		path := filepath.Join(dir, fmt.Sprintf("test%d.dds", i))
		if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Generated: %s (%s, %d bytes)\n", path, f.Format(), len(header)+len(data))
	}
}
