package model

// PredictionResult is the JSON body returned by POST /predict.
type PredictionResult struct {
	PredictedClass string            `json:"predicted_class,omitempty"`
	Error          string            `json:"error,omitempty"`
	AllPredictions []ClassConfidence `json:"all_predictions,omitempty"`
	Confidence     float64           `json:"confidence,omitempty"`
	Success        bool              `json:"success"`
}

// ClassConfidence pairs a class label with its confidence in percent.
type ClassConfidence struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}
