package pipeline

import (
	"go.uber.org/zap"

	"emosense/dsp"
)

// Result итог предсказания для одного клипа
type Result struct {
	Energy     string  // "high" или "low"
	Emotion    string  // метка класса специалиста
	Confidence float64 // вероятность argmax-класса, [0,1]
}

// Orchestrator связывает экстрактор признаков и обе стадии классификации
// Сам не делает I/O и не хранит состояние между запросами
type Orchestrator struct {
	registry  *Registry
	extractor *dsp.Extractor
	logger    *zap.Logger
}

// NewOrchestrator создаёт оркестратор; registry может быть nil,
// если загрузка артефактов провалилась — Predict тогда вернёт отказ
func NewOrchestrator(reg *Registry, extractor *dsp.Extractor, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{registry: reg, extractor: extractor, logger: logger}
}

// Ready сообщает, загружен ли реестр артефактов
func (o *Orchestrator) Ready() bool {
	return o.registry != nil
}

// ArtifactCount возвращает количество загруженных артефактов (0 без реестра)
func (o *Orchestrator) ArtifactCount() int {
	if o.registry == nil {
		return 0
	}
	return o.registry.ArtifactCount()
}

// Predict выполняет полный конвейер: признаки -> роутер -> специалист
// Первый отказ прерывает оставшиеся стадии
func (o *Orchestrator) Predict(samples []float32, sampleRate int) (Result, error) {
	if o.registry == nil {
		return Result{}, failuref(FailureLoad, "registry", "pipeline artifacts are not loaded")
	}

	features, err := o.extractor.Extract(samples, sampleRate)
	if err != nil {
		return Result{}, newFailure(FailureExtraction, "features", err)
	}

	energy, err := RouteEnergy(features, o.registry)
	if err != nil {
		return Result{}, err
	}
	if energy != EnergyHigh && energy != EnergyLow {
		// Неожиданная метка тихо уходит к низкоэнергетическому специалисту;
		// фиксируем это в логе, чтобы рассинхрон артефактов был заметен
		o.logger.Warn("router produced unexpected energy label, falling back to low specialist",
			zap.String("label", energy))
	}

	emotion, confidence, err := ClassifyEmotion(features, energy, o.registry)
	if err != nil {
		return Result{}, err
	}

	o.logger.Debug("prediction complete",
		zap.String("energy", energy),
		zap.String("emotion", emotion),
		zap.Float64("confidence", confidence))

	return Result{Energy: energy, Emotion: emotion, Confidence: confidence}, nil
}
