package render

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Frame is one complete render pass
type Frame struct {
	Width, Height float64
	Drawables     []Drawable
}

// Digest hashes the frame content so shells can skip presenting unchanged frames
func (f *Frame) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	writeRGB := func(c RGB) {
		_, _ = h.Write([]byte{c.R, c.G, c.B})
	}

	writeF(f.Width)
	writeF(f.Height)
	for _, d := range f.Drawables {
		binary.LittleEndian.PutUint64(buf[:], uint64(d.Entity))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte{byte(d.Layer)})
		writeF(d.Bounds.X)
		writeF(d.Bounds.Y)
		writeF(d.Bounds.Width)
		writeF(d.Bounds.Height)
		for _, op := range d.Ops {
			switch o := op.(type) {
			case FillRect:
				_, _ = h.Write([]byte{'f'})
				writeF(o.Rect.X)
				writeF(o.Rect.Y)
				writeF(o.Rect.Width)
				writeF(o.Rect.Height)
				writeRGB(o.Color)
			case StrokeRect:
				_, _ = h.Write([]byte{'s'})
				writeF(o.Rect.X)
				writeF(o.Rect.Y)
				writeF(o.Rect.Width)
				writeF(o.Rect.Height)
				writeRGB(o.Color)
			case Text:
				_, _ = h.Write([]byte{'t'})
				writeF(o.Origin.X)
				writeF(o.Origin.Y)
				_, _ = h.WriteString(o.Text)
				writeRGB(o.Color)
			case Clip:
				_, _ = h.Write([]byte{'c'})
				writeF(o.Rect.X)
				writeF(o.Rect.Y)
				writeF(o.Rect.Width)
				writeF(o.Rect.Height)
			}
		}
	}
	return h.Sum64()
}
