package api

import "emosense/pipeline"

// Predictor то, что API слою нужно от конвейера
type Predictor interface {
	Predict(samples []float32, sampleRate int) (pipeline.Result, error)
	Ready() bool
	ArtifactCount() int
}

// PredictionResponse ответ на успешное предсказание
type PredictionResponse struct {
	PredictedEnergy  string `json:"predicted_energy"`
	PredictedEmotion string `json:"predicted_emotion"`
	Confidence       string `json:"confidence"` // процент с двумя знаками, например "87.42%"
}

// ErrorResponse ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse ответ health-пробы; проба никогда не падает
type HealthResponse struct {
	Status        string `json:"status"`
	ObjectsLoaded int    `json:"objects_loaded"`
}

// Event WebSocket событие о выполненном предсказании
type Event struct {
	Type       string `json:"type"`
	RequestID  string `json:"requestId,omitempty"`
	Energy     string `json:"energy,omitempty"`
	Emotion    string `json:"emotion,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	Error      string `json:"error,omitempty"`
}
