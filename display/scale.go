package display

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/lixenwraith/replay/core"
)

// Filter selects the scaling kernel
type Filter uint8

const (
	// FilterNearest is fastest, blocky under magnification
	FilterNearest Filter = iota
	// FilterBilinear trades speed for smooth resampling
	FilterBilinear
)

// Scale resamples buf to (w, h). Returns the input untouched when the
// size already matches
func Scale(buf *core.PixelBuffer, w, h int, filter Filter) *core.PixelBuffer {
	if w == buf.W && h == buf.H {
		return buf
	}
	if w < 1 || h < 1 {
		return buf
	}

	src := toRGBA(buf)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	var scaler xdraw.Scaler
	switch filter {
	case FilterBilinear:
		scaler = xdraw.ApproxBiLinear
	default:
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return fromRGBA(dst, w, h)
}

// FitViewport computes the largest (w, h) preserving the buffer's aspect
// ratio inside the viewport
func FitViewport(buf *core.PixelBuffer, viewW, viewH int) (int, int) {
	if buf.W == 0 || buf.H == 0 || viewW < 1 || viewH < 1 {
		return viewW, viewH
	}
	scaleW := float64(viewW) / float64(buf.W)
	scaleH := float64(viewH) / float64(buf.H)
	s := scaleW
	if scaleH < s {
		s = scaleH
	}
	w := int(float64(buf.W) * s)
	h := int(float64(buf.H) * s)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func toRGBA(buf *core.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.W, buf.H))
	for y := 0; y < buf.H; y++ {
		si := y * buf.Stride()
		di := y * img.Stride
		for x := 0; x < buf.W; x++ {
			img.Pix[di] = buf.Pix[si]
			img.Pix[di+1] = buf.Pix[si+1]
			img.Pix[di+2] = buf.Pix[si+2]
			img.Pix[di+3] = 255
			si += core.Channels
			di += 4
		}
	}
	return img
}

func fromRGBA(img *image.RGBA, w, h int) *core.PixelBuffer {
	out := core.NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		si := y * img.Stride
		di := y * out.Stride()
		for x := 0; x < w; x++ {
			out.Pix[di] = img.Pix[si]
			out.Pix[di+1] = img.Pix[si+1]
			out.Pix[di+2] = img.Pix[si+2]
			si += 4
			di += core.Channels
		}
	}
	return out
}
