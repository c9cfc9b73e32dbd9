package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"emosense/audio"
	"emosense/pipeline"
)

// Лимит размера загружаемого аудио (форма в памяти до 10 MB, остальное на диск)
const maxUploadMemory = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.predictor.Ready() {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:        "ok",
			ObjectsLoaded: s.predictor.ArtifactCount(),
		})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
		Status:        "unavailable",
		ObjectsLoaded: 0,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	logger := s.logger.With(zap.String("request_id", reqID))

	if !s.predictor.Ready() {
		s.writeError(w, http.StatusServiceUnavailable, "Pipeline models not loaded. Check server logs.")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// Отсутствие файла отсекается до любой работы с признаками
		s.writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	tempPath, err := s.saveUpload(file, header.Filename)
	if err != nil {
		logger.Error("failed to store upload", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Could not store the uploaded file.")
		return
	}
	defer os.Remove(tempPath)

	samples, sampleRate, err := audio.DecodeFile(tempPath)
	if err != nil {
		logger.Warn("audio decode failed", zap.String("file", header.Filename), zap.Error(err))
		s.writeError(w, http.StatusBadRequest, "Could not extract features from the audio file.")
		return
	}

	result, err := s.predictor.Predict(samples, sampleRate)
	if err != nil {
		s.writePredictError(w, logger, err)
		s.hub.Broadcast(Event{Type: "prediction_failed", RequestID: reqID, Error: err.Error()})
		return
	}

	confidence := fmt.Sprintf("%.2f%%", result.Confidence*100)
	logger.Info("prediction served",
		zap.String("energy", result.Energy),
		zap.String("emotion", result.Emotion),
		zap.String("confidence", confidence))

	s.hub.Broadcast(Event{
		Type:       "prediction",
		RequestID:  reqID,
		Energy:     result.Energy,
		Emotion:    result.Emotion,
		Confidence: confidence,
	})

	writeJSON(w, http.StatusOK, PredictionResponse{
		PredictedEnergy:  result.Energy,
		PredictedEmotion: result.Emotion,
		Confidence:       confidence,
	})
}

// saveUpload сохраняет загруженный файл во временный с исходным расширением
func (s *Server) saveUpload(file io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".wav"
	}

	tempPath := filepath.Join(os.TempDir(), "emosense-"+uuid.New().String()+ext)
	out, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	return tempPath, nil
}

// writePredictError транслирует вид отказа конвейера в HTTP статус
// Ошибки инференса логируются отдельно: это рассинхрон экстрактора
// и артефактов, а не ошибка клиента
func (s *Server) writePredictError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch pipeline.KindOf(err) {
	case pipeline.FailureExtraction:
		logger.Warn("feature extraction failed", zap.Error(err))
		s.writeError(w, http.StatusBadRequest, "Could not extract features from the audio file.")
	case pipeline.FailureMissingInput:
		s.writeError(w, http.StatusBadRequest, "No audio file provided")
	case pipeline.FailureLoad:
		logger.Error("pipeline not ready", zap.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, "Pipeline models not loaded. Check server logs.")
	case pipeline.FailureInference:
		logger.Error("stage inference failure, artifacts out of sync with extractor", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal inference error.")
	default:
		logger.Error("prediction failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal error.")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
