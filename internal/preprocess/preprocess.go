package preprocess

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

const (
	// TargetSize is the square edge length the model was trained on.
	TargetSize = 300
	// Channels is the number of color channels the model expects.
	Channels = 3
)

// InputLength is the number of float values in one batched model input
// (batch axis of 1 included).
const InputLength = 1 * TargetSize * TargetSize * Channels

// Decode parses image bytes using the registered decoders (JPEG, PNG, GIF).
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Normalize converts an image of arbitrary size and color mode into the
// model's input layout: 300x300 RGB, interleaved channels-last, pixel
// values scaled to [0,1]. Aspect ratio is not preserved; the image is
// stretched to the target square. Grayscale, RGBA and paletted inputs are
// handled transparently since color values are read through RGBA().
func Normalize(img image.Image) []float32 {
	resized := resize.Resize(TargetSize, TargetSize, img, resize.Lanczos3)

	data := make([]float32, InputLength)
	i := 0
	for y := 0; y < TargetSize; y++ {
		for x := 0; x < TargetSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()

			// RGBA returns 16-bit values, so 65535 plays the role of 255.
			data[i] = float32(r) / 65535.0
			data[i+1] = float32(g) / 65535.0
			data[i+2] = float32(b) / 65535.0
			i += Channels
		}
	}

	return data
}
