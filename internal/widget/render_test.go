package widget

import (
	"math"
	"testing"

	"github.com/Veraticus/scenic/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		want  string
		input float64
	}{
		{input: 87.345, want: "87.35"},
		{input: 12.655, want: "12.66"},
		{input: 0.125, want: "0.13"},
		{input: 1.005, want: "1.01"},
		{input: 99.995, want: "100.00"},
		{input: 99.994, want: "99.99"},
		{input: 100, want: "100.00"},
		{input: 50.5, want: "50.50"},
		{input: 0, want: "0.00"},
		{input: 0.004, want: "0.00"},
		{input: 0.0000001, want: "0.00"},
		{input: 33.333333333333336, want: "33.33"},
		{input: 66.66666666666667, want: "66.67"},
		{input: -0.125, want: "-0.13"},
		{input: -0.001, want: "0.00"},
		{input: -2, want: "-2.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPercent(tt.input))
		})
	}
}

func TestFormatPercent_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN", FormatPercent(math.NaN()))
	assert.Equal(t, "+Inf", FormatPercent(math.Inf(1)))
}

func TestNewResultView(t *testing.T) {
	view := NewResultView(model.PredictionResult{
		Success:        true,
		PredictedClass: "glacier",
		Confidence:     64.2,
		AllPredictions: []model.ClassConfidence{
			{Class: "glacier", Confidence: 64.2},
			{Class: "mountain", Confidence: 30.1},
			{Class: "sea", Confidence: 5.7},
		},
	})

	assert.Equal(t, "GLACIER", view.Label)
	assert.Equal(t, "Confidence: 64.20%", view.ConfidenceText)
	assert.Equal(t, "64.2%", view.BarWidth())
	assert.InDelta(t, 0.642, view.BarFraction(), 1e-9)

	var classes []string
	for _, line := range view.Predictions {
		classes = append(classes, line.Class+" "+line.Confidence)
	}
	assert.Equal(t, []string{"glacier 64.20%", "mountain 30.10%", "sea 5.70%"}, classes)
}

func TestNewResultView_KeepsServerOrder(t *testing.T) {
	view := NewResultView(model.PredictionResult{
		Success:        true,
		PredictedClass: "street",
		Confidence:     40,
		AllPredictions: []model.ClassConfidence{
			{Class: "buildings", Confidence: 10},
			{Class: "street", Confidence: 40},
		},
	})

	assert.Equal(t, "buildings", view.Predictions[0].Class)
	assert.Equal(t, "street", view.Predictions[1].Class)
}

func TestNewResultView_UnicodeLabel(t *testing.T) {
	view := NewResultView(model.PredictionResult{Success: true, PredictedClass: "café"})
	assert.Equal(t, "CAFÉ", view.Label)
	assert.Empty(t, view.Predictions)
}

func TestClampFraction(t *testing.T) {
	assert.Zero(t, ClampFraction(-5))
	assert.Zero(t, ClampFraction(0))
	assert.InDelta(t, 0.5, ClampFraction(50), 1e-9)
	assert.Equal(t, 1.0, ClampFraction(100))
	assert.Equal(t, 1.0, ClampFraction(140))
}
