package analyzer

import "math"

// Job is one unit of work: a single uploaded image to analyze. Jobs are
// immutable and passed by value into the orchestration.
type Job struct {
	BlobName   string  `json:"blobName"`
	BlobSizeKB float64 `json:"blobSizeKB"`
}

// NewJob builds a Job from a blob path and its raw size in bytes.
func NewJob(blobName string, sizeBytes int64) Job {
	return Job{
		BlobName:   blobName,
		BlobSizeKB: math.Round(float64(sizeBytes)/1024*100) / 100,
	}
}

type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DominantColor is one quantized color bucket with its share of the sampled
// pixels.
type DominantColor struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// ColorResult is the color analyzer's output. A non-empty Error marks a
// degraded zero-valued result, never an aborted job.
type ColorResult struct {
	DominantColors     []DominantColor `json:"dominantColors"`
	IsGrayscale        bool            `json:"isGrayscale"`
	TotalPixelsSampled int             `json:"totalPixelsSampled"`
	Error              string          `json:"error,omitempty"`
}

type DetectedObject struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ObjectResult is the object analyzer's output. The ordered tag list is the
// stable contract a future real detector must keep.
type ObjectResult struct {
	Objects     []DetectedObject `json:"objects"`
	ObjectCount int              `json:"objectCount"`
	Note        string           `json:"note,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// TextResult is the text analyzer's output; currently always the fixed
// placeholder.
type TextResult struct {
	HasText       bool    `json:"hasText"`
	ExtractedText string  `json:"extractedText"`
	Confidence    float64 `json:"confidence"`
	Language      string  `json:"language"`
	Note          string  `json:"note,omitempty"`
}

// MetadataResult is the metadata analyzer's output.
type MetadataResult struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Format      string   `json:"format"`
	Mode        string   `json:"mode,omitempty"`
	TotalPixels int      `json:"totalPixels,omitempty"`
	Megapixels  float64  `json:"megapixels,omitempty"`
	SizeKB      *float64 `json:"sizeKB,omitempty"`
	Error       string   `json:"error,omitempty"`
}
