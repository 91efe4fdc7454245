package dds

// FourCCFormat returns a pixel format described by a FourCC code.
func FourCCFormat(code uint32) PixelFormat {
	return PixelFormat{
		Size:   PixelFormatSize,
		Flags:  PFFourCC,
		FourCC: code,
	}
}

// MaskFormat returns an uncompressed pixel format described by bit masks.
// flags selects RGB, luminance or alpha-only storage; PFAlphaPixels is
// added when a is non zero.
func MaskFormat(flags, bitCount, r, g, b, a uint32) PixelFormat {
	if a != 0 && flags&PFAlpha == 0 {
		flags |= PFAlphaPixels
	}
	return PixelFormat{
		Size:      PixelFormatSize,
		Flags:     flags,
		BitCount:  bitCount,
		RedMask:   r,
		GreenMask: g,
		BlueMask:  b,
		AlphaMask: a,
	}
}

// NewFile builds the header of a flat 2D texture with the given number of
// mipmap levels below the base level.
func NewFile(width, height, mipmaps uint32, pf PixelFormat) *File {
	f := &File{
		Header: Header{
			Size:        HeaderSize,
			Flags:       FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat,
			Height:      height,
			Width:       width,
			PixelFormat: pf,
			Caps1:       CapsTexture,
		},
	}

	if mipmaps > 0 {
		f.Header.Flags |= FlagMipmapCount
		f.Header.MipmapCount = mipmaps + 1
		f.Header.Caps1 |= CapsComplex | CapsMipmap
	}

	if f.IsCompressed() {
		f.Header.Flags |= FlagLinearSize
		f.Header.PitchOrLinearSize = uint32(f.LevelSize(0))
	} else {
		f.Header.Flags |= FlagPitch
		f.Header.PitchOrLinearSize = width * f.pixelSize()
	}

	f.DataSize = f.ExpectedDataSize()
	return f
}
