package frames

import (
	"image"
	"image/draw"
	"image/gif"
	"time"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
)

// gifDelayUnit is the resolution of GIF frame delays.
const gifDelayUnit = 10 * time.Millisecond

// composite renders every frame of g onto a canvas of the logical screen size
// and applies each frame's disposal method before drawing the next one. The
// returned frames are independent copies.
func composite(g *gif.GIF) ([]Frame, error) {
	if len(g.Image) == 0 {
		return nil, ErrEmptyAnimation
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, pm := range g.Image {
			bounds = bounds.Union(pm.Bounds())
		}
		bounds.Min = image.Point{}
	}

	canvas := image.NewNRGBA(bounds)
	out := make([]Frame, 0, len(g.Image))
	for i := range iter.N(len(g.Image)) {
		pm := g.Image[i]

		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = clone(canvas)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)

		var delay time.Duration
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * gifDelayUnit
		}
		out = append(out, Frame{Image: clone(canvas), Delay: delay})
		glog.V(2).Infof("gif frame %d: rect %v, delay %v, disposal %d", i, pm.Bounds(), delay, disposal)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return out, nil
}

func clone(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
