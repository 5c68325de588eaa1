package analyzer

import (
	"context"
	"fmt"
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"

	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/storage"
)

const (
	// Edge length of the downsample grid. Bounds the counting pass at
	// sampleGrid*sampleGrid samples regardless of source resolution.
	sampleGrid = 50

	// Channel values are floored to the nearest lower multiple of this,
	// yielding 8 buckets per channel (512 total).
	bucketStep = 32

	maxDominantColors = 5

	// A sample is neutral when adjacent channels differ by less than this.
	neutralChannelDelta = 30

	// Fraction of neutral samples above which the image counts as grayscale.
	grayscaleFraction = 0.9
)

// ColorAnalyzer computes dominant colors and grayscale classification by
// quantized frequency counting over a fixed downsample grid.
type ColorAnalyzer struct {
	blobs storage.BlobSource
}

func NewColorAnalyzer(blobs storage.BlobSource) *ColorAnalyzer {
	return &ColorAnalyzer{blobs: blobs}
}

// Analyze always returns a well-formed ColorResult. Any failure yields the
// zero-valued result with Error set; nothing escapes this boundary.
func (a *ColorAnalyzer) Analyze(ctx context.Context, job Job) ColorResult {
	logger.WithField("blob", job.BlobName).Debug("Analyzing colors")

	data, err := a.blobs.Fetch(ctx, job.BlobName)
	if err != nil {
		return colorFailure(job, err)
	}

	img, _, err := decodeImage(data)
	if err != nil {
		return colorFailure(job, fmt.Errorf("decode image: %w", err))
	}

	samples := downsample(img)
	return quantizeColors(samples)
}

func colorFailure(job Job, err error) ColorResult {
	logger.WithError(err).WithField("blob", job.BlobName).Warn("Color analysis failed")
	return ColorResult{DominantColors: []DominantColor{}, Error: err.Error()}
}

// downsample scales the image onto the fixed sampling grid and returns the
// samples in row-major order as 3-channel values.
func downsample(img image.Image) []RGB {
	small := image.NewRGBA(image.Rect(0, 0, sampleGrid, sampleGrid))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	samples := make([]RGB, 0, sampleGrid*sampleGrid)
	for y := 0; y < sampleGrid; y++ {
		for x := 0; x < sampleGrid; x++ {
			c := small.RGBAAt(x, y)
			samples = append(samples, RGB{R: int(c.R), G: int(c.G), B: int(c.B)})
		}
	}
	return samples
}

type colorBucket struct {
	rgb   RGB
	count int
}

// quantizeColors floors each sample into its channel buckets, ranks buckets by
// descending frequency (stable, so equal counts keep first-seen order) and
// reports the top buckets plus the grayscale classification.
func quantizeColors(samples []RGB) ColorResult {
	buckets := make(map[RGB]*colorBucket)
	order := make([]*colorBucket, 0, 64)
	neutral := 0

	for _, s := range samples {
		if abs(s.R-s.G) < neutralChannelDelta && abs(s.G-s.B) < neutralChannelDelta {
			neutral++
		}

		key := RGB{
			R: s.R / bucketStep * bucketStep,
			G: s.G / bucketStep * bucketStep,
			B: s.B / bucketStep * bucketStep,
		}
		if b, ok := buckets[key]; ok {
			b.count++
			continue
		}
		b := &colorBucket{rgb: key, count: 1}
		buckets[key] = b
		order = append(order, b)
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].count > order[j].count })
	if len(order) > maxDominantColors {
		order = order[:maxDominantColors]
	}

	total := len(samples)
	dominant := make([]DominantColor, 0, len(order))
	for _, b := range order {
		dominant = append(dominant, DominantColor{
			Hex:        fmt.Sprintf("#%02x%02x%02x", b.rgb.R, b.rgb.G, b.rgb.B),
			RGB:        b.rgb,
			Percentage: math.Round(float64(b.count)/float64(total)*100*10) / 10,
		})
	}

	return ColorResult{
		DominantColors:     dominant,
		IsGrayscale:        float64(neutral)/float64(total) > grayscaleFraction,
		TotalPixelsSampled: total,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
