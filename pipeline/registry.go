package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Triad артефакты одной стадии: скейлер, модель, декодер меток
type Triad struct {
	Scaler *Scaler
	Model  Classifier
	Labels *LabelDecoder
}

// Registry все обученные артефакты конвейера: роутер и два специалиста
// Загружается один раз при старте процесса и далее не изменяется;
// одно значение разделяется всеми конкурентными запросами без блокировок
type Registry struct {
	Router         Triad
	SpecialistHigh Triad
	SpecialistLow  Triad
}

// ArtifactCount возвращает количество загруженных артефактов
func (r *Registry) ArtifactCount() int {
	return len(ArtifactFiles())
}

// Close уничтожает ONNX сессии реестра
func (r *Registry) Close() {
	for _, t := range []Triad{r.Router, r.SpecialistHigh, r.SpecialistLow} {
		if c, ok := t.Model.(*ONNXClassifier); ok {
			c.Close()
		}
	}
}

// Load читает все девять артефактов из каталога. Загрузка атомарна:
// первый отсутствующий или нечитаемый артефакт прерывает её целиком,
// частично загруженный реестр никогда не возвращается
func Load(dir string, logger *zap.Logger) (*Registry, error) {
	// Сначала проверяем наличие всех файлов
	for _, name := range ArtifactFiles() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, failuref(FailureLoad, "registry", "required artifact not found: %s", path)
		}
	}

	reg := &Registry{}

	load := func(triad *Triad, modelFile, scalerFile, labelsFile string, layout TensorLayout) error {
		var err error
		logger.Info("loading artifact", zap.String("file", scalerFile))
		if triad.Scaler, err = LoadScaler(filepath.Join(dir, scalerFile)); err != nil {
			return err
		}
		logger.Info("loading artifact", zap.String("file", labelsFile))
		if triad.Labels, err = LoadLabelDecoder(filepath.Join(dir, labelsFile)); err != nil {
			return err
		}
		logger.Info("loading artifact", zap.String("file", modelFile))
		model, err := NewONNXClassifier(filepath.Join(dir, modelFile), layout)
		if err != nil {
			return err
		}
		triad.Model = model
		return nil
	}

	if err := load(&reg.Router, RouterModelFile, RouterScalerFile, RouterLabelsFile, LayoutFlat); err != nil {
		reg.Close()
		return nil, newFailure(FailureLoad, "registry", err)
	}
	if err := load(&reg.SpecialistHigh, SpecialistHighModelFile, SpecialistHighScalerFile, SpecialistHighLabelsFile, LayoutSequence); err != nil {
		reg.Close()
		return nil, newFailure(FailureLoad, "registry", err)
	}
	if err := load(&reg.SpecialistLow, SpecialistLowModelFile, SpecialistLowScalerFile, SpecialistLowLabelsFile, LayoutSequence); err != nil {
		reg.Close()
		return nil, newFailure(FailureLoad, "registry", err)
	}

	if err := validate(reg); err != nil {
		reg.Close()
		return nil, newFailure(FailureLoad, "registry", err)
	}

	logger.Info("all pipeline artifacts loaded", zap.Int("count", reg.ArtifactCount()))
	return reg, nil
}

// validate проверяет согласованность загруженных артефактов между собой
func validate(r *Registry) error {
	if r.Router.Labels.Count() != 2 {
		return fmt.Errorf("router decoder has %d classes, want 2", r.Router.Labels.Count())
	}
	if r.SpecialistHigh.Scaler.Dim() != r.Router.Scaler.Dim() ||
		r.SpecialistLow.Scaler.Dim() != r.Router.Scaler.Dim() {
		return fmt.Errorf("scaler dimensions disagree: router %d, high %d, low %d",
			r.Router.Scaler.Dim(), r.SpecialistHigh.Scaler.Dim(), r.SpecialistLow.Scaler.Dim())
	}
	return nil
}
