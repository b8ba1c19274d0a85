package img

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

func init() {
	AddProcessor("native", resizeNative)
	AddProcessor("bild", resizeBild)
}

// resizeNative uses imaging's Lanczos filter.
func resizeNative(m image.Image, w, h int) image.Image {
	return imaging.Resize(m, w, h, imaging.Lanczos)
}

// resizeBild uses bild's Lanczos filter.
func resizeBild(m image.Image, w, h int) image.Image {
	return transform.Resize(m, w, h, transform.Lanczos)
}
