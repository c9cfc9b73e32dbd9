package pipeline

// ClassifyEmotion прогоняет вектор через специалиста выбранной энергии
// "high" выбирает высокоэнергетического специалиста, любая другая метка —
// низкоэнергетического (структурный default, не валидируемый случай)
// Сырой вектор масштабируется собственным скейлером специалиста;
// скейлер роутера здесь переиспользовать нельзя
func ClassifyEmotion(features []float64, energyLabel string, reg *Registry) (string, float64, error) {
	triad := reg.SpecialistLow
	stage := "specialist_low"
	if energyLabel == EnergyHigh {
		triad = reg.SpecialistHigh
		stage = "specialist_high"
	}

	scaled, err := triad.Scaler.Transform(features)
	if err != nil {
		return "", 0, newFailure(FailureInference, stage, err)
	}

	// Модель специалиста ожидает последовательность [1, L, 1];
	// раскладку обеспечивает сам классификатор
	probs, err := triad.Model.Predict(scaled)
	if err != nil {
		return "", 0, newFailure(FailureInference, stage, err)
	}
	if len(probs) == 0 {
		return "", 0, failuref(FailureInference, stage, "classifier returned no probabilities")
	}

	best := argmax(probs)
	emotion, err := triad.Labels.Decode(best)
	if err != nil {
		return "", 0, newFailure(FailureInference, stage, err)
	}

	return emotion, probs[best], nil
}
