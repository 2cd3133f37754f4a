package output

import (
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"
)

// Caption describes the render settings printed on an annotated image
type Caption struct {
	Scene           string
	SamplesPerPixel int
	MaxDepth        int
	RenderTime      time.Duration
}

func (c Caption) String() string {
	return fmt.Sprintf("%s  %d spp  depth %d  %v",
		c.Scene, c.SamplesPerPixel, c.MaxDepth, c.RenderTime.Round(time.Millisecond))
}

const captionPadding = 4

// Annotate returns a copy of img with the caption drawn on a dark strip along the bottom edge
func Annotate(img image.Image, caption Caption) image.Image {
	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	stripHeight := dc.FontHeight() + 2*captionPadding
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, h-stripHeight, w, stripHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(caption.String(), captionPadding, h-stripHeight/2, 0, 0.5)

	return dc.Image()
}
