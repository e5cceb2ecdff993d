// Package metrics measures how far a halftoned image is from its source.
//
// All functions compare two sample slices of equal length position by
// position and compute in float64, so differences never wrap around.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/halftone"
)

// ErrShapeMismatch is returned when two images or sample slices differ in
// size or layout.
var ErrShapeMismatch = errors.New("metrics: shape mismatch")

func checkLen(f, g []uint8) error {
	if len(f) != len(g) {
		return fmt.Errorf("%w: %d and %d samples", ErrShapeMismatch, len(f), len(g))
	}
	if len(f) == 0 {
		return fmt.Errorf("%w: no samples", ErrShapeMismatch)
	}
	return nil
}

func toFloat64(f []uint8) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[i] = float64(v)
	}
	return out
}

// samples converts both inputs after checking their lengths.
func samples(f, g []uint8) ([]float64, []float64, error) {
	if err := checkLen(f, g); err != nil {
		return nil, nil, err
	}
	return toFloat64(f), toFloat64(g), nil
}

// RMSE returns the root mean squared difference.
func RMSE(f, g []uint8) (float64, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return 0, err
	}
	return rmse(x, y), nil
}

func rmse(x, y []float64) float64 {
	return floats.Distance(x, y, 2) / math.Sqrt(float64(len(x)))
}

// SNR returns the signal to noise ratio in decibels, 10·log10(Σf² / Σ(f-g)²).
// Identical inputs give +Inf, including two all-zero inputs. An all-zero f
// with any difference gives -Inf.
func SNR(f, g []uint8) (float64, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return 0, err
	}
	return snr(x, y), nil
}

func snr(x, y []float64) float64 {
	d := floats.Distance(x, y, 2)
	if d == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(floats.Dot(x, x)/(d*d))
}

// PSNR returns the peak signal to noise ratio in decibels, 20·log10(255 / RMSE).
// Identical inputs give +Inf.
func PSNR(f, g []uint8) (float64, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return 0, err
	}
	return psnr(x, y), nil
}

func psnr(x, y []float64) float64 {
	return 20 * math.Log10(255/rmse(x, y))
}

// Cov returns the population covariance of f and g.
func Cov(f, g []uint8) (float64, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return 0, err
	}
	return cov(x, y), nil
}

// cov rescales the unbiased estimate to the population denominator.
func cov(x, y []float64) float64 {
	n := float64(len(x))
	if n < 2 {
		return 0
	}
	return stat.Covariance(x, y, nil) * (n - 1) / n
}

// Corr returns the Pearson correlation of f and g. It is NaN when either
// input is constant.
func Corr(f, g []uint8) (float64, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return 0, err
	}
	return corr(x, y), nil
}

func corr(x, y []float64) float64 {
	if floats.Min(x) == floats.Max(x) || floats.Min(y) == floats.Max(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Jaccard returns the fraction of positions where f and g hold the same
// value.
func Jaccard(f, g []uint8) (float64, error) {
	if err := checkLen(f, g); err != nil {
		return 0, err
	}
	same := 0
	for i := range f {
		if f[i] == g[i] {
			same++
		}
	}
	return float64(same) / float64(len(f)), nil
}

// DiffPercentile returns the p-th percentile (0 to 1) of the absolute
// differences |f-g|.
func DiffPercentile(f, g []uint8, p float64) (int, error) {
	if err := checkLen(f, g); err != nil {
		return 0, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("metrics: percentile %v out of [0, 1]", p)
	}
	diffs := make([]int, len(f))
	for i := range f {
		d := int(f[i]) - int(g[i])
		if d < 0 {
			d = -d
		}
		diffs[i] = d
	}
	slices.Sort(diffs)
	return diffs[int(math.Round(p*float64(len(diffs)-1)))], nil
}

// Report holds every metric for one pair of images.
type Report struct {
	RMSE    float64
	SNR     float64
	PSNR    float64
	Corr    float64
	Cov     float64
	Jaccard float64
}

// Metric is one named value of a Report.
type Metric struct {
	Name  string
	Value float64
}

// Metrics returns the report's values in display order.
func (r Report) Metrics() []Metric {
	return []Metric{
		{"RMSE", r.RMSE},
		{"SNR", r.SNR},
		{"PSNR", r.PSNR},
		{"corr", r.Corr},
		{"cov", r.Cov},
		{"jaccard", r.Jaccard},
	}
}

// String formats the report one metric per line, as "\t    RMSE   12.345".
func (r Report) String() string {
	var b strings.Builder
	for _, m := range r.Metrics() {
		fmt.Fprintf(&b, "\t%8s %9.3f\n", m.Name, m.Value)
	}
	return b.String()
}

// Compare computes every metric over all samples of two images of the same
// size and format.
func Compare(f, g *halftone.Image) (Report, error) {
	if f == nil || g == nil {
		return Report{}, fmt.Errorf("%w: nil image", ErrShapeMismatch)
	}
	if fw, fh := f.Bounds(); fw != g.Width() || fh != g.Height() || f.Format() != g.Format() {
		return Report{}, fmt.Errorf("%w: %v and %v", ErrShapeMismatch, f, g)
	}
	return CompareSamples(f.Data(), g.Data())
}

// CompareSamples computes every metric over two sample slices. The samples
// are converted to float64 once and shared by all metrics.
func CompareSamples(f, g []uint8) (Report, error) {
	x, y, err := samples(f, g)
	if err != nil {
		return Report{}, err
	}
	jaccard, _ := Jaccard(f, g)
	return Report{
		RMSE:    rmse(x, y),
		SNR:     snr(x, y),
		PSNR:    psnr(x, y),
		Corr:    corr(x, y),
		Cov:     cov(x, y),
		Jaccard: jaccard,
	}, nil
}
