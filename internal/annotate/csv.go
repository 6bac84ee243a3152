package annotate

import (
	"bufio"
	"io"
	"strconv"

	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

// Row is everything written for one accepted instance.
type Row struct {
	Name     string
	Instance *sampler.Instance
	NDC      geom.Vec3
	Screen   geom.Vec2
}

// Writer emits annotation rows in the fixed column order:
//
//	"<name>", hx,hy,hz, yaw,pitch, nx,ny,nz, sx,sy, ly,lp, lr,lg,lb, ar,ag,ab, sr,sg,sb
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write buffers one row; call Flush to push it out.
func (cw *Writer) Write(r Row) error {
	in := r.Instance
	b := cw.buf[:0]
	b = append(b, '"')
	b = append(b, r.Name...)
	b = append(b, '"')
	b = group(b, in.HeadPos.X, in.HeadPos.Y, in.HeadPos.Z)
	b = group(b, in.HeadDir.Y, in.HeadDir.P)
	b = group(b, r.NDC.X, r.NDC.Y, r.NDC.Z)
	b = group(b, r.Screen.X, r.Screen.Y)
	b = group(b, in.LightDir.Y, in.LightDir.P)
	b = group(b, in.LightColor.R, in.LightColor.G, in.LightColor.B)
	b = group(b, in.Ambient.R, in.Ambient.G, in.Ambient.B)
	b = group(b, in.Skin.R, in.Skin.G, in.Skin.B)
	b = append(b, '\n')
	cw.buf = b
	_, err := cw.w.Write(b)
	return err
}

func (cw *Writer) Flush() error { return cw.w.Flush() }

func group(b []byte, vs ...float64) []byte {
	b = append(b, ", "...)
	for i, v := range vs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return b
}
