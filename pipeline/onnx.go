package pipeline

import (
	"fmt"
	"log"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Classifier обученный классификатор: вектор признаков -> оценки классов
// Роутер берёт argmax оценок, специалист трактует их как вероятности
type Classifier interface {
	Predict(features []float64) ([]float64, error)
}

// TensorLayout форма входного тензора модели
type TensorLayout int

const (
	LayoutFlat     TensorLayout = iota // [1, L] — роутер
	LayoutSequence                     // [1, L, 1] — специалисты (sequence-модели)
)

// ONNXClassifier классификатор поверх ONNX Runtime сессии
type ONNXClassifier struct {
	session *ort.DynamicAdvancedSession
	layout  TensorLayout
	mu      sync.Mutex
}

// NewONNXClassifier загружает ONNX модель и создаёт сессию
func NewONNXClassifier(modelPath string, layout TensorLayout) (*ONNXClassifier, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	if err := initONNXRuntime(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX Runtime: %w", err)
	}

	inputInfo, outputInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get model info: %w", err)
	}

	inputNames := make([]string, len(inputInfo))
	for i, info := range inputInfo {
		inputNames[i] = info.Name
	}
	outputNames := make([]string, len(outputInfo))
	for i, info := range outputInfo {
		outputNames[i] = info.Name
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{session: session, layout: layout}, nil
}

// Predict прогоняет вектор через модель и возвращает оценки классов
func (c *ONNXClassifier) Predict(features []float64) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, fmt.Errorf("classifier is closed")
	}

	input := make([]float32, len(features))
	for i, f := range features {
		input[i] = float32(f)
	}

	var shape ort.Shape
	switch c.layout {
	case LayoutSequence:
		shape = ort.NewShape(1, int64(len(input)), 1)
	default:
		shape = ort.NewShape(1, int64(len(input)))
	}

	inputTensor, err := ort.NewTensor(shape, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer func() {
		for _, out := range outputs {
			if out != nil {
				out.Destroy()
			}
		}
	}()

	outputTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}

	// Копируем, так как тензор будет уничтожен
	data := outputTensor.GetData()
	scores := make([]float64, len(data))
	for i, v := range data {
		scores[i] = float64(v)
	}

	return scores, nil
}

// Close уничтожает ONNX сессию
func (c *ONNXClassifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.Destroy()
		c.session = nil
	}
}

// ONNX Runtime глобальная инициализация
var (
	onnxInitialized bool
	onnxInitMu      sync.Mutex
)

func initONNXRuntime() error {
	onnxInitMu.Lock()
	defer onnxInitMu.Unlock()

	if onnxInitialized {
		return nil
	}

	// Проверяем переменную окружения для пути к библиотеке
	libPath := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")

	// Если не задана переменная окружения, ищем в стандартных местах
	if libPath == "" {
		searchPaths := []string{
			"./libonnxruntime.so",
			"./libonnxruntime.dylib",
			"/usr/local/lib/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				libPath = path
				break
			}
		}
	}

	if libPath != "" {
		log.Printf("Using ONNX Runtime library: %s", libPath)
		ort.SetSharedLibraryPath(libPath)
	} else {
		return fmt.Errorf("ONNX Runtime library not found (set ONNXRUNTIME_SHARED_LIBRARY_PATH)")
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return err
	}

	onnxInitialized = true
	return nil
}
