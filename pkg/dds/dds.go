// Package dds reads and writes DirectDraw Surface headers.
package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// DDS format errors.
var (
	ErrInvalidMagic      = errors.New("invalid DDS magic: expected 'DDS '")
	ErrTruncatedData     = errors.New("truncated DDS data")
	ErrInvalidHeaderSize = errors.New("invalid DDS header size")
)

// Sizes in bytes.
const (
	MagicSize       = 4
	PixelFormatSize = 32
	HeaderSize      = 124
	HeaderDX10Size  = 20
	DataOffset      = MagicSize + HeaderSize
)

// Magic is the little-endian "DDS " marker.
const Magic = 'D' | 'D'<<8 | 'S'<<16 | ' '<<24

// Header flags.
const (
	FlagCaps        = 0x00000001
	FlagHeight      = 0x00000002
	FlagWidth       = 0x00000004
	FlagPitch       = 0x00000008
	FlagPixelFormat = 0x00001000
	FlagMipmapCount = 0x00020000
	FlagLinearSize  = 0x00080000
	FlagDepth       = 0x00800000
)

// Pixel format flags.
const (
	PFAlphaPixels = 0x00000001
	PFAlpha       = 0x00000002
	PFFourCC      = 0x00000004
	PFRGB         = 0x00000040
	PFLuminance   = 0x00020000
	PFNormal      = 0x80000000
)

// Caps.
const (
	CapsComplex = 0x00000008
	CapsTexture = 0x00001000
	CapsMipmap  = 0x00400000

	Caps2CubeMap = 0x00000200
	Caps2Volume  = 0x00200000
)

// MakeFourCC packs four characters into a FourCC code.
func MakeFourCC(c0, c1, c2, c3 byte) uint32 {
	return uint32(c0) | uint32(c1)<<8 | uint32(c2)<<16 | uint32(c3)<<24
}

// Well-known FourCC codes.
var (
	FourCCDXT1 = MakeFourCC('D', 'X', 'T', '1')
	FourCCDXT2 = MakeFourCC('D', 'X', 'T', '2')
	FourCCDXT3 = MakeFourCC('D', 'X', 'T', '3')
	FourCCDXT4 = MakeFourCC('D', 'X', 'T', '4')
	FourCCDXT5 = MakeFourCC('D', 'X', 'T', '5')
	FourCCATI1 = MakeFourCC('A', 'T', 'I', '1')
	FourCCATI2 = MakeFourCC('A', 'T', 'I', '2')
	FourCCDX10 = MakeFourCC('D', 'X', '1', '0')
)

// PixelFormat is the DDS_PIXELFORMAT block.
type PixelFormat struct {
	Size      uint32
	Flags     uint32
	FourCC    uint32
	BitCount  uint32
	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	AlphaMask uint32
}

// Header is the 124 byte DDS_HEADER that follows the magic.
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipmapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps1             uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// HeaderDX10 is the extension header present when the FourCC is "DX10".
type HeaderDX10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// File is a parsed DDS header plus the size of the surface data behind it.
type File struct {
	Header   Header
	DX10     *HeaderDX10
	DataSize int
}

// Parse parses the headers of a DDS file from raw bytes.
func Parse(data []byte) (*File, error) {
	if len(data) < MagicSize {
		return nil, ErrTruncatedData
	}
	if binary.LittleEndian.Uint32(data) != Magic {
		return nil, ErrInvalidMagic
	}
	if len(data) < DataOffset {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedData, len(data), DataOffset)
	}

	r := bytes.NewReader(data[MagicSize:])
	f := &File{}
	if err := binary.Read(r, binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedData)
	}

	if f.Header.Size != HeaderSize {
		return nil, fmt.Errorf("%w: header %d", ErrInvalidHeaderSize, f.Header.Size)
	}
	if f.Header.PixelFormat.Size != PixelFormatSize {
		return nil, fmt.Errorf("%w: pixel format %d", ErrInvalidHeaderSize, f.Header.PixelFormat.Size)
	}

	offset := DataOffset
	if f.hasFourCC(FourCCDX10) {
		f.DX10 = &HeaderDX10{}
		if err := binary.Read(r, binary.LittleEndian, f.DX10); err != nil {
			return nil, fmt.Errorf("%w: reading DX10 header", ErrTruncatedData)
		}
		offset += HeaderDX10Size
	}
	f.DataSize = len(data) - offset

	return f, nil
}

// MarshalBinary encodes the magic and headers. Surface data is not included.
func (f *File) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(Magic)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, &f.Header); err != nil {
		return nil, err
	}
	if f.DX10 != nil {
		if err := binary.Write(&buf, binary.LittleEndian, f.DX10); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (f *File) hasFourCC(code uint32) bool {
	pf := f.Header.PixelFormat
	return pf.Flags&PFFourCC != 0 && pf.FourCC == code
}

// Width returns the surface width in pixels.
func (f *File) Width() uint32 { return f.Header.Width }

// Height returns the surface height in pixels.
func (f *File) Height() uint32 { return f.Header.Height }

// Depth returns the volume depth, 0 for flat textures.
func (f *File) Depth() uint32 {
	if f.Header.Flags&FlagDepth == 0 {
		return 0
	}
	return f.Header.Depth
}

// MipmapCount returns the number of mipmap levels below the base level.
func (f *File) MipmapCount() uint32 {
	if f.Header.Flags&FlagMipmapCount == 0 || f.Header.MipmapCount == 0 {
		return 0
	}
	return f.Header.MipmapCount - 1
}

// IsCubeMap reports whether the file stores a cube map.
func (f *File) IsCubeMap() bool {
	if f.DX10 != nil {
		return f.DX10.MiscFlag&miscTextureCube != 0
	}
	return f.Header.Caps2&Caps2CubeMap != 0
}

// IsVolume reports whether the file stores a 3D texture.
func (f *File) IsVolume() bool {
	if f.DX10 != nil {
		return f.DX10.ResourceDimension == dimensionTexture3D
	}
	return f.Header.Caps2&Caps2Volume != 0
}

// IsArray reports whether the file stores a texture array.
func (f *File) IsArray() bool {
	return f.DX10 != nil && f.DX10.ArraySize > 1
}

// String returns a one line summary of the file.
func (f *File) String() string {
	s := fmt.Sprintf("%dx%d %s, %d mipmaps", f.Width(), f.Height(), f.Format(), f.MipmapCount())
	if d := f.Depth(); d > 0 {
		s += fmt.Sprintf(", depth %d", d)
	}
	if f.IsCubeMap() {
		s += ", cube map"
	}
	if f.IsVolume() {
		s += ", volume"
	}
	if f.IsArray() {
		s += fmt.Sprintf(", array of %d", f.DX10.ArraySize)
	}
	return s
}
