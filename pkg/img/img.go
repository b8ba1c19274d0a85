package img

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"

	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/disintegration/imaging"

	_ "github.com/biessek/golang-ico" // ICO decoder
	_ "golang.org/x/image/bmp"        // BMP decoder
	_ "golang.org/x/image/tiff"       // TIFF decoder
	_ "golang.org/x/image/webp"       // WEBP decoder
)

// MaxPixels is the biggest source image we accept (30Mpx).
const MaxPixels = 30000000

// ErrTooBig is returned when an image exceeds MaxPixels.
var ErrTooBig = errors.New("image is too big")

// ResizeFunc resizes an image to exactly w x h pixels.
type ResizeFunc func(m image.Image, w, h int) image.Image

var processors = map[string]ResizeFunc{}

// AddProcessor registers a new resize processor.
func AddProcessor(name string, fn ResizeFunc) {
	processors[name] = fn
}

// Resize resizes an image with the given processor.
func Resize(processor string, m image.Image, w, h int) (image.Image, error) {
	fn, ok := processors[processor]
	if !ok {
		return nil, fmt.Errorf("processor %s not found", processor)
	}
	return fn(m, w, h), nil
}

// Decode reads an image from r. The format is returned along with
// the image, which is already rotated following its EXIF orientation.
func Decode(r io.Reader) (image.Image, string, error) {
	// We need to grab the format first, hence this two pass thing
	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	c, format, err := image.DecodeConfig(tee)
	if err != nil {
		return nil, "", err
	}

	if c.Width*c.Height > MaxPixels {
		return nil, "", ErrTooBig
	}

	m, err := imaging.Decode(
		io.MultiReader(&buf, r),
		imaging.AutoOrientation(true),
	)
	if err != nil {
		return nil, "", err
	}

	return m, format, nil
}

// Open loads an image file.
func Open(name string) (image.Image, string, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, "", err
	}
	defer fd.Close()

	return Decode(fd)
}

// OpenURL loads a remote image.
func OpenURL(src string, client *http.Client) (image.Image, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	if src == "" {
		return nil, "", errors.New("no image URL")
	}

	rsp, err := client.Get(src)
	if err != nil {
		return nil, "", err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode/100 != 2 {
		return nil, "", fmt.Errorf("invalid response status (%d)", rsp.StatusCode)
	}

	return Decode(rsp.Body)
}

// FitSize returns the biggest size that fits within w x h and keeps
// the aspect ratio of a src image. Unlike a thumbnail, the result
// can be bigger than the source.
func FitSize(src image.Rectangle, w, h int) (int, int) {
	ow, oh := src.Dx(), src.Dy()
	if ow == 0 || oh == 0 {
		return w, h
	}

	srcAspectRatio := float64(ow) / float64(oh)
	maxAspectRatio := float64(w) / float64(h)

	var nw, nh int
	if srcAspectRatio > maxAspectRatio {
		nw = w
		nh = int(float64(nw)/srcAspectRatio + 0.5)
	} else {
		nh = h
		nw = int(float64(nh)*srcAspectRatio + 0.5)
	}

	return max(nw, 1), max(nh, 1)
}
