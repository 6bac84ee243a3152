package imageio

import (
	"image"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of tensorflow.TensorProto and tensorflow.TensorShapeProto.
const (
	tensorDType   protowire.Number = 1
	tensorShape   protowire.Number = 2
	tensorContent protowire.Number = 4

	shapeDim protowire.Number = 2
	dimSize  protowire.Number = 1

	dtUint8 = 4 // tensorflow.DataType DT_UINT8
)

// MarshalTensor serializes img as a TensorProto of shape [H, W, 4] (RGBA, uint8).
func MarshalTensor(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var shape []byte
	for _, n := range []int{h, w, 4} {
		var dim []byte
		dim = protowire.AppendTag(dim, dimSize, protowire.VarintType)
		dim = protowire.AppendVarint(dim, uint64(n))
		shape = protowire.AppendTag(shape, shapeDim, protowire.BytesType)
		shape = protowire.AppendBytes(shape, dim)
	}

	content := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		off := y * img.Stride
		content = append(content, img.Pix[off:off+w*4]...)
	}

	out := make([]byte, 0, len(content)+len(shape)+16)
	out = protowire.AppendTag(out, tensorDType, protowire.VarintType)
	out = protowire.AppendVarint(out, dtUint8)
	out = protowire.AppendTag(out, tensorShape, protowire.BytesType)
	out = protowire.AppendBytes(out, shape)
	out = protowire.AppendTag(out, tensorContent, protowire.BytesType)
	out = protowire.AppendBytes(out, content)
	return out
}

// UnmarshalTensor reads back what MarshalTensor wrote. Unknown fields are skipped.
func UnmarshalTensor(data []byte) (*image.NRGBA, error) {
	var (
		dtype   uint64
		dims    []int
		content []byte
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
		switch {
		case num == tensorDType && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			dtype, n = v, m
		case num == tensorShape && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			d, err := parseShape(v)
			if err != nil {
				return nil, err
			}
			dims, n = d, m
		case num == tensorContent && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			content, n = v, m
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
		}
		data = data[n:]
	}
	if dtype != dtUint8 {
		return nil, errors.Errorf("unexpected tensor dtype %d", dtype)
	}
	if len(dims) != 3 || dims[2] != 4 {
		return nil, errors.Errorf("unexpected tensor shape %v", dims)
	}
	h, w := dims[0], dims[1]
	if len(content) != w*h*4 {
		return nil, errors.Errorf("tensor content has %d bytes, shape %v needs %d", len(content), dims, w*h*4)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, content)
	return img, nil
}

func parseShape(data []byte) ([]int, error) {
	var dims []int
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]
		if num != shapeDim || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		dim, m := protowire.ConsumeBytes(data)
		if m < 0 {
			return nil, protowire.ParseError(m)
		}
		data = data[m:]
		size := 0
		for len(dim) > 0 {
			dn, dt, k := protowire.ConsumeTag(dim)
			if k < 0 {
				return nil, protowire.ParseError(k)
			}
			dim = dim[k:]
			if dn == dimSize && dt == protowire.VarintType {
				v, k := protowire.ConsumeVarint(dim)
				if k < 0 {
					return nil, protowire.ParseError(k)
				}
				size = int(v)
				dim = dim[k:]
				continue
			}
			k = protowire.ConsumeFieldValue(dn, dt, dim)
			if k < 0 {
				return nil, protowire.ParseError(k)
			}
			dim = dim[k:]
		}
		dims = append(dims, size)
	}
	return dims, nil
}
