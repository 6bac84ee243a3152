// Package imageio encodes rendered frames and decodes background images.
package imageio

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/lukaszgryglicki/commedia/internal/config"
)

// Encode writes img to w in the given session format.
func Encode(format config.Format, w io.Writer, img *image.NRGBA) error {
	switch format {
	case config.BMP:
		return bmp.Encode(w, img)
	case config.PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case config.ProtoBuf:
		_, err := w.Write(MarshalTensor(img))
		return err
	}
	return errors.Errorf("unsupported format %v", format)
}
