// Package render draws spectrogram images for analyzed waveforms.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/spectrokit/spectrokit/internal/feature"
)

const (
	// Rendered dimensions. The time axis is resampled to maxWidth
	// columns when a file has more STFT frames than that.
	maxWidth   = 1200
	specHeight = 400
	titleSpace = 20

	// Dynamic range of the dB color scale.
	floorDB = -80.0
)

// Spectrogram renders a log-frequency magnitude spectrogram of samples
// to <outputDir>/<name>.png, titled with the name and the label set.
// Errors are reported to the caller but must not fail the enclosing
// file's numeric analysis.
func Spectrogram(samples []float64, sampleRate int, labels []string, name, outputDir string) error {
	if len(samples) == 0 {
		return fmt.Errorf("empty waveform for %s", name)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating image output dir: %w", err)
	}

	spec := feature.STFT(samples, sampleRate)
	db := toDB(spec.Magnitudes)

	width := len(db)
	if width > maxWidth {
		width = maxWidth
	}

	img := image.NewRGBA(image.Rect(0, 0, width, titleSpace+specHeight))
	fill(img, color.RGBA{A: 0xFF})

	bins := len(db[0])
	nyquist := spec.Freqs[bins-1]
	fmin := spec.Freqs[1] // lowest non-DC bin anchors the log axis
	logSpan := math.Log(nyquist / fmin)

	for x := 0; x < width; x++ {
		frame := db[x*len(db)/width]
		for y := 0; y < specHeight; y++ {
			// y=0 is the top of the image, i.e. the Nyquist end of a
			// log-spaced frequency axis.
			frac := 1 - float64(y)/float64(specHeight-1)
			freq := fmin * math.Exp(frac*logSpan)
			bin := int(freq/nyquist*float64(bins-1) + 0.5)
			if bin >= bins {
				bin = bins - 1
			}
			img.Set(x, titleSpace+y, heat(frame[bin]))
		}
	}

	drawTitle(img, title(name, labels))

	out := filepath.Join(outputDir, name+".png")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}
	return nil
}

func title(name string, labels []string) string {
	return fmt.Sprintf("%s - Labels: [%s]", name, strings.Join(labels, ", "))
}

// toDB converts magnitudes to decibels relative to the global peak,
// clamped at floorDB.
func toDB(mags [][]float64) [][]float64 {
	peak := 0.0
	for _, row := range mags {
		for _, m := range row {
			if m > peak {
				peak = m
			}
		}
	}
	if peak == 0 {
		peak = 1
	}
	out := make([][]float64, len(mags))
	for i, row := range mags {
		out[i] = make([]float64, len(row))
		for k, m := range row {
			db := floorDB
			if m > 0 {
				db = math.Max(20*math.Log10(m/peak), floorDB)
			}
			out[i][k] = db
		}
	}
	return out
}

// heat maps a dB value onto a blue-to-green ramp, dark blue at the floor.
func heat(db float64) color.RGBA {
	t := (db - floorDB) / -floorDB
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return color.RGBA{
		G: uint8(255 * t),
		B: uint8(255 * (1 - 0.5*t)),
		A: 0xFF,
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawTitle(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(text)
}
