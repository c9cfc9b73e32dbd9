package pipeline

// Метки энергии, которые выдаёт роутер
const (
	EnergyHigh = "high"
	EnergyLow  = "low"
)

// RouteEnergy прогоняет вектор признаков через первую стадию:
// скейлер роутера -> классификатор -> argmax -> метка энергии
// Решение жёсткое: вероятности и пороги наружу не выдаются
func RouteEnergy(features []float64, reg *Registry) (string, error) {
	scaled, err := reg.Router.Scaler.Transform(features)
	if err != nil {
		return "", newFailure(FailureInference, "router", err)
	}

	scores, err := reg.Router.Model.Predict(scaled)
	if err != nil {
		return "", newFailure(FailureInference, "router", err)
	}
	if len(scores) == 0 {
		return "", failuref(FailureInference, "router", "classifier returned no scores")
	}

	label, err := reg.Router.Labels.Decode(argmax(scores))
	if err != nil {
		return "", newFailure(FailureInference, "router", err)
	}

	return label, nil
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
