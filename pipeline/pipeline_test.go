package pipeline

import (
	"testing"

	"go.uber.org/zap"

	"emosense/dsp"
)

// mockClassifier реализует Classifier для тестов
type mockClassifier struct {
	scores []float64
	err    error
	calls  int
}

func (m *mockClassifier) Predict(features []float64) ([]float64, error) {
	m.calls++
	return m.scores, m.err
}

func identityScaler(t *testing.T, dim int) *Scaler {
	t.Helper()
	mean := make([]float64, dim)
	scale := make([]float64, dim)
	for i := range scale {
		scale[i] = 1
	}
	s, err := NewScaler(mean, scale)
	if err != nil {
		t.Fatalf("failed to build scaler: %v", err)
	}
	return s
}

func decoder(t *testing.T, classes ...string) *LabelDecoder {
	t.Helper()
	d, err := NewLabelDecoder(classes)
	if err != nil {
		t.Fatalf("failed to build decoder: %v", err)
	}
	return d
}

// testRegistry собирает реестр из тестовых двойников
func testRegistry(t *testing.T, dim int, router, high, low *mockClassifier) *Registry {
	t.Helper()
	return &Registry{
		Router: Triad{
			Scaler: identityScaler(t, dim),
			Model:  router,
			Labels: decoder(t, "high", "low"),
		},
		SpecialistHigh: Triad{
			Scaler: identityScaler(t, dim),
			Model:  high,
			Labels: decoder(t, "angry", "happy"),
		},
		SpecialistLow: Triad{
			Scaler: identityScaler(t, dim),
			Model:  low,
			Labels: decoder(t, "calm", "sad", "angry"),
		},
	}
}

func TestRouteEnergy(t *testing.T) {
	features := make([]float64, 4)

	tests := []struct {
		scores []float64
		want   string
	}{
		{[]float64{0.9, 0.1}, "high"},
		{[]float64{0.2, 0.8}, "low"},
	}

	for _, tc := range tests {
		reg := testRegistry(t, 4, &mockClassifier{scores: tc.scores}, &mockClassifier{}, &mockClassifier{})
		got, err := RouteEnergy(features, reg)
		if err != nil {
			t.Fatalf("RouteEnergy failed: %v", err)
		}
		if got != tc.want {
			t.Errorf("RouteEnergy(%v) = %q, want %q", tc.scores, got, tc.want)
		}
	}
}

func TestRouteEnergyDimensionMismatch(t *testing.T) {
	reg := testRegistry(t, 4, &mockClassifier{scores: []float64{1, 0}}, &mockClassifier{}, &mockClassifier{})

	_, err := RouteEnergy(make([]float64, 7), reg)
	if err == nil {
		t.Fatal("Expected error for wrong vector length")
	}
	if KindOf(err) != FailureInference {
		t.Errorf("KindOf = %v, want FailureInference", KindOf(err))
	}
}

func TestClassifyEmotionHighBranch(t *testing.T) {
	high := &mockClassifier{scores: []float64{0.9, 0.1}}
	low := &mockClassifier{scores: []float64{0.5, 0.3, 0.2}}
	reg := testRegistry(t, 4, &mockClassifier{}, high, low)

	emotion, conf, err := ClassifyEmotion(make([]float64, 4), "high", reg)
	if err != nil {
		t.Fatalf("ClassifyEmotion failed: %v", err)
	}
	if emotion != "angry" || conf != 0.9 {
		t.Errorf("got (%q, %v), want (angry, 0.9)", emotion, conf)
	}
	if high.calls != 1 || low.calls != 0 {
		t.Errorf("high called %d times, low %d; want 1 and 0", high.calls, low.calls)
	}
}

func TestClassifyEmotionDefaultsToLow(t *testing.T) {
	// Всё, что не "high", уходит к низкоэнергетическому специалисту,
	// включая неожиданные метки
	for _, label := range []string{"low", "medium", "", "HIGH"} {
		high := &mockClassifier{scores: []float64{1, 0}}
		low := &mockClassifier{scores: []float64{0.1, 0.7, 0.2}}
		reg := testRegistry(t, 4, &mockClassifier{}, high, low)

		emotion, conf, err := ClassifyEmotion(make([]float64, 4), label, reg)
		if err != nil {
			t.Fatalf("ClassifyEmotion(%q) failed: %v", label, err)
		}
		if emotion != "sad" || conf != 0.7 {
			t.Errorf("label %q: got (%q, %v), want (sad, 0.7)", label, emotion, conf)
		}
		if high.calls != 0 || low.calls != 1 {
			t.Errorf("label %q: high called %d times, low %d; want 0 and 1", label, high.calls, low.calls)
		}
	}
}

func TestClassifyEmotionConfidenceIsArgmax(t *testing.T) {
	probs := []float64{0.15, 0.05, 0.6, 0.2}
	low := &mockClassifier{scores: probs}
	reg := testRegistry(t, 4, &mockClassifier{}, &mockClassifier{}, low)
	reg.SpecialistLow.Labels = decoder(t, "a", "b", "c", "d")

	emotion, conf, err := ClassifyEmotion(make([]float64, 4), "low", reg)
	if err != nil {
		t.Fatalf("ClassifyEmotion failed: %v", err)
	}
	if emotion != "c" {
		t.Errorf("emotion = %q, want argmax class c", emotion)
	}
	if conf != probs[2] {
		t.Errorf("confidence = %v, want %v", conf, probs[2])
	}
	if conf < 0 || conf > 1 {
		t.Errorf("confidence %v outside [0,1]", conf)
	}
}

func TestOrchestratorDispatch(t *testing.T) {
	extractor := dsp.NewExtractor(dsp.DefaultExtractorConfig())
	dim := extractor.FeatureLength()
	samples := make([]float32, 8000)

	// Роутер говорит "high" -> должен сработать только высокий специалист
	high := &mockClassifier{scores: []float64{0.8, 0.2}}
	low := &mockClassifier{scores: []float64{0.1, 0.7, 0.2}}
	reg := testRegistry(t, dim, &mockClassifier{scores: []float64{1, 0}}, high, low)

	orch := NewOrchestrator(reg, extractor, zap.NewNop())
	result, err := orch.Predict(samples, 8000)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if result.Energy != "high" || result.Emotion != "angry" {
		t.Errorf("got (%q, %q), want (high, angry)", result.Energy, result.Emotion)
	}
	if high.calls != 1 || low.calls != 0 {
		t.Errorf("high called %d times, low %d; want 1 and 0", high.calls, low.calls)
	}

	// Роутер говорит "low" -> только низкий специалист
	high = &mockClassifier{scores: []float64{0.8, 0.2}}
	low = &mockClassifier{scores: []float64{0.1, 0.7, 0.2}}
	reg = testRegistry(t, dim, &mockClassifier{scores: []float64{0, 1}}, high, low)

	orch = NewOrchestrator(reg, extractor, zap.NewNop())
	result, err = orch.Predict(samples, 8000)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if result.Energy != "low" || result.Emotion != "sad" || result.Confidence != 0.7 {
		t.Errorf("got (%q, %q, %v), want (low, sad, 0.7)", result.Energy, result.Emotion, result.Confidence)
	}
	if high.calls != 0 || low.calls != 1 {
		t.Errorf("high called %d times, low %d; want 0 and 1", high.calls, low.calls)
	}
}

func TestOrchestratorWithoutRegistry(t *testing.T) {
	orch := NewOrchestrator(nil, dsp.NewExtractor(dsp.DefaultExtractorConfig()), zap.NewNop())

	if orch.Ready() {
		t.Error("orchestrator without registry reports ready")
	}
	if orch.ArtifactCount() != 0 {
		t.Errorf("ArtifactCount = %d, want 0", orch.ArtifactCount())
	}

	_, err := orch.Predict(make([]float32, 100), 22050)
	if err == nil {
		t.Fatal("Expected failure without registry")
	}
	if KindOf(err) != FailureLoad {
		t.Errorf("KindOf = %v, want FailureLoad", KindOf(err))
	}
}

func TestOrchestratorExtractionFailure(t *testing.T) {
	extractor := dsp.NewExtractor(dsp.DefaultExtractorConfig())
	reg := testRegistry(t, extractor.FeatureLength(), &mockClassifier{scores: []float64{1, 0}}, &mockClassifier{}, &mockClassifier{})
	orch := NewOrchestrator(reg, extractor, zap.NewNop())

	_, err := orch.Predict(nil, 22050)
	if err == nil {
		t.Fatal("Expected extraction failure for empty waveform")
	}
	if KindOf(err) != FailureExtraction {
		t.Errorf("KindOf = %v, want FailureExtraction", KindOf(err))
	}
}

func TestWarmup(t *testing.T) {
	extractor := dsp.NewExtractor(dsp.DefaultExtractorConfig())
	router := &mockClassifier{scores: []float64{0, 1}}
	low := &mockClassifier{scores: []float64{0.4, 0.6}}
	reg := testRegistry(t, extractor.FeatureLength(), router, &mockClassifier{}, low)

	orch := NewOrchestrator(reg, extractor, zap.NewNop())
	if err := orch.Warmup(); err != nil {
		t.Fatalf("Warmup failed: %v", err)
	}
	if router.calls != 1 {
		t.Errorf("router called %d times during warmup, want 1", router.calls)
	}
}
