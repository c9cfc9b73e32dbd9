package pipeline

// Девять артефактов конвейера с фиксированными именами внутри каталога
// Роутер и оба специалиста: модель + скейлер + список классов
const (
	RouterModelFile  = "router_model.onnx"
	RouterScalerFile = "router_scaler.json"
	RouterLabelsFile = "router_labels.json"

	SpecialistHighModelFile  = "specialist_high.onnx"
	SpecialistHighScalerFile = "specialist_high_scaler.json"
	SpecialistHighLabelsFile = "specialist_high_labels.json"

	SpecialistLowModelFile  = "specialist_low.onnx"
	SpecialistLowScalerFile = "specialist_low_scaler.json"
	SpecialistLowLabelsFile = "specialist_low_labels.json"
)

// ArtifactFiles возвращает все обязательные имена файлов артефактов
func ArtifactFiles() []string {
	return []string{
		RouterModelFile,
		RouterScalerFile,
		RouterLabelsFile,
		SpecialistHighModelFile,
		SpecialistHighScalerFile,
		SpecialistHighLabelsFile,
		SpecialistLowModelFile,
		SpecialistLowScalerFile,
		SpecialistLowLabelsFile,
	}
}
