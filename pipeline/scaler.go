package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler нормализует вектор признаков статистиками, зафиксированными
// при обучении (standard score per колонка); статистики не пересчитываются
type Scaler struct {
	mean  []float64
	scale []float64
}

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NewScaler создаёт скейлер из готовых статистик
func NewScaler(mean, scale []float64) (*Scaler, error) {
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("mean length %d != scale length %d", len(mean), len(scale))
	}
	if len(mean) == 0 {
		return nil, fmt.Errorf("empty scaler statistics")
	}

	// Нулевой масштаб означает константную колонку при обучении
	fixed := make([]float64, len(scale))
	copy(fixed, scale)
	for i, s := range fixed {
		if s == 0 {
			fixed[i] = 1
		}
	}

	return &Scaler{mean: mean, scale: fixed}, nil
}

// LoadScaler читает JSON артефакт скейлера
func LoadScaler(path string) (*Scaler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler %s: %w", path, err)
	}

	var art scalerArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("failed to parse scaler %s: %w", path, err)
	}

	return NewScaler(art.Mean, art.Scale)
}

// Dim возвращает ожидаемую длину вектора
func (s *Scaler) Dim() int {
	return len(s.mean)
}

// Transform нормализует вектор; длина должна совпадать со статистиками
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("feature vector length %d, scaler expects %d", len(features), len(s.mean))
	}

	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
