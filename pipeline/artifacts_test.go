package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestScalerTransform(t *testing.T) {
	s, err := NewScaler([]float64{1, 2}, []float64{2, 4})
	if err != nil {
		t.Fatalf("NewScaler failed: %v", err)
	}

	out, err := s.Transform([]float64{3, 10})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("Transform = %v, want [1 2]", out)
	}

	if _, err := s.Transform([]float64{1}); err == nil {
		t.Error("Expected error for dimension mismatch")
	}
}

func TestScalerZeroScale(t *testing.T) {
	// Нулевой масштаб (константная колонка при обучении) не должен делить на ноль
	s, err := NewScaler([]float64{5}, []float64{0})
	if err != nil {
		t.Fatalf("NewScaler failed: %v", err)
	}

	out, err := s.Transform([]float64{7})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if out[0] != 2 {
		t.Errorf("Transform = %v, want [2]", out)
	}
}

func TestLoadScalerJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaler.json")
	if err := os.WriteFile(path, []byte(`{"mean":[0,1],"scale":[1,2]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScaler(path)
	if err != nil {
		t.Fatalf("LoadScaler failed: %v", err)
	}
	if s.Dim() != 2 {
		t.Errorf("Dim = %d, want 2", s.Dim())
	}

	if _, err := LoadScaler(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLabelDecoder(t *testing.T) {
	d, err := NewLabelDecoder([]string{"calm", "sad", "angry"})
	if err != nil {
		t.Fatalf("NewLabelDecoder failed: %v", err)
	}

	label, err := d.Decode(1)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if label != "sad" {
		t.Errorf("Decode(1) = %q, want sad", label)
	}

	if _, err := d.Decode(3); err == nil {
		t.Error("Expected error for out-of-range index")
	}
	if _, err := d.Decode(-1); err == nil {
		t.Error("Expected error for negative index")
	}
}

func TestLoadLabelDecoderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	if err := os.WriteFile(path, []byte(`{"classes":["high","low"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadLabelDecoder(path)
	if err != nil {
		t.Fatalf("LoadLabelDecoder failed: %v", err)
	}
	if d.Count() != 2 {
		t.Errorf("Count = %d, want 2", d.Count())
	}
}

func TestArtifactFiles(t *testing.T) {
	files := ArtifactFiles()
	if len(files) != 9 {
		t.Fatalf("ArtifactFiles returned %d names, want 9", len(files))
	}

	seen := map[string]bool{}
	for _, f := range files {
		if seen[f] {
			t.Errorf("duplicate artifact name %q", f)
		}
		seen[f] = true
	}
}

func TestLoadMissingArtifacts(t *testing.T) {
	// Пустой каталог: загрузка падает на первом же отсутствующем артефакте
	_, err := Load(t.TempDir(), zap.NewNop())
	if err == nil {
		t.Fatal("Expected LoadFailure for empty directory")
	}
	if KindOf(err) != FailureLoad {
		t.Errorf("KindOf = %v, want FailureLoad", KindOf(err))
	}
	if !strings.Contains(err.Error(), RouterModelFile) {
		t.Errorf("error %q does not name the first missing artifact %s", err, RouterModelFile)
	}
}

func TestLoadAllOrNothing(t *testing.T) {
	// Присутствует только первый артефакт — загрузка всё равно падает,
	// называя следующий отсутствующий файл
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, RouterModelFile), []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir, zap.NewNop())
	if err == nil {
		t.Fatal("Expected LoadFailure for partial directory")
	}
	if KindOf(err) != FailureLoad {
		t.Errorf("KindOf = %v, want FailureLoad", KindOf(err))
	}
	if !strings.Contains(err.Error(), RouterScalerFile) {
		t.Errorf("error %q does not name the missing artifact %s", err, RouterScalerFile)
	}
}

func TestFailureKindString(t *testing.T) {
	kinds := map[FailureKind]string{
		FailureLoad:         "load",
		FailureExtraction:   "extraction",
		FailureMissingInput: "missing_input",
		FailureInference:    "inference",
		FailureUnknown:      "unknown",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), want)
		}
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(os.ErrNotExist) != FailureUnknown {
		t.Error("plain error should map to FailureUnknown")
	}
}
