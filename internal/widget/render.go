package widget

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/scenic/internal/model"
)

// BarDelay is how long a surface waits before animating the confidence bar
// towards its target.
const BarDelay = 100 * time.Millisecond

// ResultView is a prediction prepared for display.
type ResultView struct {
	Label          string
	ConfidenceText string
	Predictions    []PredictionLine
	Confidence     float64
}

// PredictionLine is one class/confidence row of the full prediction list.
type PredictionLine struct {
	Class      string
	Confidence string
	Value      float64
}

// NewResultView formats a successful prediction. Rows keep the order the
// server sent them in.
func NewResultView(result model.PredictionResult) ResultView {
	view := ResultView{
		Label:          strings.ToUpper(result.PredictedClass),
		ConfidenceText: fmt.Sprintf("Confidence: %s%%", FormatPercent(result.Confidence)),
		Confidence:     result.Confidence,
		Predictions:    make([]PredictionLine, 0, len(result.AllPredictions)),
	}

	for _, p := range result.AllPredictions {
		view.Predictions = append(view.Predictions, PredictionLine{
			Class:      p.Class,
			Confidence: FormatPercent(p.Confidence) + "%",
			Value:      p.Confidence,
		})
	}

	return view
}

// BarWidth is the bar's target width as a CSS percentage, e.g. "87.345%".
func (v ResultView) BarWidth() string {
	return strconv.FormatFloat(v.Confidence, 'f', -1, 64) + "%"
}

// BarFraction is the bar's target as a fraction clamped to [0, 1].
func (v ResultView) BarFraction() float64 {
	return ClampFraction(v.Confidence)
}

// ClampFraction converts a percentage into a progress fraction in [0, 1].
func ClampFraction(percent float64) float64 {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 1
	default:
		return percent / 100
	}
}

// FormatPercent renders v with two decimals. It rounds the shortest decimal
// form of v half away from zero, so 87.345 gives "87.35" even though the
// nearest float64 is slightly below it.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	digits := strconv.FormatFloat(v, 'f', -1, 64)

	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	intPart, fracPart, _ := strings.Cut(digits, ".")
	if len(fracPart) <= 2 {
		out := intPart + "." + fracPart + strings.Repeat("0", 2-len(fracPart))
		if negative && strings.Trim(out, "0.") != "" {
			return "-" + out
		}
		return out
	}

	hundredths, ok := new(big.Int).SetString(intPart+fracPart[:2], 10)
	if !ok {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	if fracPart[2] >= '5' {
		hundredths.Add(hundredths, big.NewInt(1))
	}

	s := hundredths.String()
	if len(s) < 3 {
		s = strings.Repeat("0", 3-len(s)) + s
	}
	out := s[:len(s)-2] + "." + s[len(s)-2:]
	if negative && hundredths.Sign() != 0 {
		return "-" + out
	}
	return out
}
