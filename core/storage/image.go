package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	AvatarSize  = 256
	CoverWidth  = 1280
	CoverHeight = 720

	webpQuality = 80
	WebPType    = "image/webp"
)

type ImageKind int

const (
	ImageAvatar ImageKind = iota
	ImageCover
)

// ProcessImage decodes an upload, resizes it for its use and re-encodes it as webp.
func ProcessImage(raw []byte, kind ImageKind) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var out image.Image
	switch kind {
	case ImageAvatar:
		out = imaging.Fill(src, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)
	case ImageCover:
		b := src.Bounds()
		if b.Dx() > CoverWidth || b.Dy() > CoverHeight {
			out = imaging.Fit(src, CoverWidth, CoverHeight, imaging.Lanczos)
		} else {
			out = src
		}
	default:
		return nil, fmt.Errorf("unknown image kind %d", kind)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, out, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
