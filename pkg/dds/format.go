package dds

import (
	"fmt"
	"math"
	"math/bits"
)

// D3D format codes stored in the FourCC field.
const (
	D3DFormatA16B16G16R16       = 36
	D3DFormatL16                = 81
	D3DFormatA16B16G16R16Signed = 110
	D3DFormatR16F               = 111
	D3DFormatG16R16F            = 112
	D3DFormatA16B16G16R16F      = 113
	D3DFormatR32F               = 114
	D3DFormatG32R32F            = 115
	D3DFormatA32B32G32R32F      = 116
)

// DX10 resource dimensions and flags.
const (
	dimensionTexture3D = 4
	miscTextureCube    = 0x4
)

var fourCCNames = map[uint32]string{
	FourCCDXT1: "DXT1",
	FourCCDXT2: "DXT2",
	FourCCDXT3: "DXT3",
	FourCCDXT4: "DXT4",
	FourCCDXT5: "DXT5",
	FourCCATI1: "ATI1",
	FourCCATI2: "ATI2",

	D3DFormatA16B16G16R16:       "A16B16G16R16",
	D3DFormatL16:                "L16",
	D3DFormatA16B16G16R16Signed: "A16B16G16R16_SNORM",
	D3DFormatR16F:               "R16F",
	D3DFormatG16R16F:            "G16R16F",
	D3DFormatA16B16G16R16F:      "A16B16G16R16F",
	D3DFormatR32F:               "R32F",
	D3DFormatG32R32F:            "G32R32F",
	D3DFormatA32B32G32R32F:      "A32B32G32R32F",
}

// bytes per pixel of the float and 16 bit FourCC formats
var fourCCPixelSizes = map[uint32]uint32{
	D3DFormatA16B16G16R16:       8,
	D3DFormatL16:                2,
	D3DFormatA16B16G16R16Signed: 8,
	D3DFormatR16F:               2,
	D3DFormatG16R16F:            4,
	D3DFormatA16B16G16R16F:      8,
	D3DFormatR32F:               4,
	D3DFormatG32R32F:            8,
	D3DFormatA32B32G32R32F:      16,
}

type maskFormat struct {
	flags    uint32
	bitCount uint32
	r, g, b  uint32
	a        uint32
}

var maskNames = map[maskFormat]string{
	{PFRGB | PFAlphaPixels, 32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000}: "A8R8G8B8",
	{PFRGB | PFAlphaPixels, 32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000}: "A8B8G8R8",
	{PFRGB, 32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0}:                          "X8R8G8B8",
	{PFRGB, 32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0}:                          "X8B8G8R8",
	{PFRGB, 24, 0x00ff0000, 0x0000ff00, 0x000000ff, 0}:                          "R8G8B8",
	{PFRGB, 16, 0xf800, 0x07e0, 0x001f, 0}:                                      "R5G6B5",
	{PFRGB | PFAlphaPixels, 16, 0x7c00, 0x03e0, 0x001f, 0x8000}:                 "A1R5G5B5",
	{PFRGB, 16, 0x7c00, 0x03e0, 0x001f, 0}:                                      "X1R5G5B5",
	{PFRGB | PFAlphaPixels, 16, 0x0f00, 0x00f0, 0x000f, 0xf000}:                 "A4R4G4B4",
	{PFRGB, 16, 0x0f00, 0x00f0, 0x000f, 0}:                                      "X4R4G4B4",
	{PFRGB | PFAlphaPixels, 32, 0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000}: "A2R10G10B10",
	{PFRGB | PFAlphaPixels, 32, 0x000003ff, 0x000ffc00, 0x3ff00000, 0xc0000000}: "A2B10G10R10",
	{PFRGB, 32, 0x0000ffff, 0xffff0000, 0, 0}:                                   "G16R16",
	{PFRGB, 16, 0x00ff, 0xff00, 0, 0}:                                           "G8R8",
	{PFRGB, 8, 0xe0, 0x1c, 0x03, 0}:                                             "R3G3B2",
	{PFRGB, 8, 0xff, 0, 0, 0}:                                                   "R8",
	{PFLuminance, 8, 0xff, 0, 0, 0}:                                             "L8",
	{PFLuminance | PFAlphaPixels, 16, 0x00ff, 0, 0, 0xff00}:                     "A8L8",
	{PFLuminance | PFAlphaPixels, 8, 0x0f, 0, 0, 0xf0}:                          "A4L4",
	{PFAlpha, 8, 0, 0, 0, 0xff}:                                                 "A8",
}

const formatFlagMask = PFRGB | PFAlphaPixels | PFLuminance | PFAlpha

// Format names the pixel format of the file.
func (f *File) Format() string {
	pf := f.Header.PixelFormat

	if pf.Flags&PFFourCC != 0 {
		if f.DX10 != nil {
			return fmt.Sprintf("DX10 (DXGI format %d)", f.DX10.DXGIFormat)
		}
		if name, ok := fourCCNames[pf.FourCC]; ok {
			return name
		}
		return fmt.Sprintf("FourCC 0x%08X", pf.FourCC)
	}

	key := maskFormat{
		flags:    pf.Flags & formatFlagMask,
		bitCount: pf.BitCount,
		r:        pf.RedMask,
		g:        pf.GreenMask,
		b:        pf.BlueMask,
		a:        pf.AlphaMask,
	}
	if name, ok := maskNames[key]; ok {
		return name
	}
	return fmt.Sprintf("%d bit (r=0x%X g=0x%X b=0x%X a=0x%X)",
		pf.BitCount, pf.RedMask, pf.GreenMask, pf.BlueMask, pf.AlphaMask)
}

// IsCompressed reports whether the surface is stored in 4x4 blocks.
func (f *File) IsCompressed() bool {
	return f.blockSize() > 0
}

func (f *File) blockSize() uint32 {
	pf := f.Header.PixelFormat
	if pf.Flags&PFFourCC == 0 {
		return 0
	}
	switch pf.FourCC {
	case FourCCDXT1, FourCCATI1:
		return 8
	case FourCCDXT2, FourCCDXT3, FourCCDXT4, FourCCDXT5, FourCCATI2:
		return 16
	}
	return 0
}

func (f *File) pixelSize() uint32 {
	pf := f.Header.PixelFormat
	if pf.Flags&PFFourCC != 0 {
		return fourCCPixelSizes[pf.FourCC]
	}
	return pf.BitCount / 8
}

// LevelSize returns the byte size of one face of mipmap level.
// It returns 0 when the format's size is unknown or does not fit in an int.
func (f *File) LevelSize(level uint32) int {
	w := uint64(max(f.Header.Width>>level, 1))
	h := uint64(max(f.Header.Height>>level, 1))

	var units, unitSize uint64
	if bs := f.blockSize(); bs > 0 {
		units, unitSize = ((w+3)/4)*((h+3)/4), uint64(bs)
	} else {
		units, unitSize = w*h, uint64(f.pixelSize())
	}

	hi, size := bits.Mul64(units, unitSize)
	if hi != 0 || size > math.MaxInt {
		return 0
	}
	return int(size)
}

// levelLimit is the longest mip chain the base dimensions allow.
func (f *File) levelLimit() uint32 {
	return uint32(bits.Len32(max(f.Header.Width, f.Header.Height)))
}

// ExpectedDataSize returns the surface data size implied by the header for
// flat 2D textures, or 0 when it cannot be derived.
func (f *File) ExpectedDataSize() int {
	if f.Depth() > 0 || f.DX10 != nil {
		return 0
	}
	// A mip chain longer than the dimensions allow is a corrupt header.
	if f.MipmapCount() >= f.levelLimit() {
		return 0
	}
	faces := 1
	if f.IsCubeMap() {
		faces = 6
	}
	total := 0
	for level := uint32(0); level <= f.MipmapCount(); level++ {
		size := f.LevelSize(level)
		if size == 0 || total > math.MaxInt/faces-size {
			return 0
		}
		total += size
	}
	return total * faces
}
