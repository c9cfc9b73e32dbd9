package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// LabelDecoder переводит индекс класса в метку по упорядоченному списку,
// зафиксированному при обучении; единственная операция — индекс -> строка
type LabelDecoder struct {
	classes []string
}

type labelsArtifact struct {
	Classes []string `json:"classes"`
}

// NewLabelDecoder создаёт декодер из списка классов
func NewLabelDecoder(classes []string) (*LabelDecoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("empty class list")
	}
	return &LabelDecoder{classes: classes}, nil
}

// LoadLabelDecoder читает JSON артефакт со списком классов
func LoadLabelDecoder(path string) (*LabelDecoder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels %s: %w", path, err)
	}

	var art labelsArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("failed to parse labels %s: %w", path, err)
	}

	return NewLabelDecoder(art.Classes)
}

// Count возвращает количество классов
func (d *LabelDecoder) Count() int {
	return len(d.classes)
}

// Decode возвращает метку класса по индексу
func (d *LabelDecoder) Decode(index int) (string, error) {
	if index < 0 || index >= len(d.classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", index, len(d.classes))
	}
	return d.classes[index], nil
}
