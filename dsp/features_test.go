package dsp

import (
	"math"
	"testing"
)

const testFeatureLength = 466

func sineWave(freq float64, sampleRate, n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return samples
}

func TestFeatureLength(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	if e.FeatureLength() != testFeatureLength {
		t.Errorf("FeatureLength() = %d, want %d", e.FeatureLength(), testFeatureLength)
	}
}

func TestExtractSilentClip(t *testing.T) {
	// Одна секунда тишины на 22050 Hz — прогревочный кейс
	e := NewExtractor(DefaultExtractorConfig())
	silence := make([]float32, 22050)

	features, err := e.Extract(silence, 22050)
	if err != nil {
		t.Fatalf("Extract failed on silence: %v", err)
	}
	if len(features) != e.FeatureLength() {
		t.Errorf("Expected %d features, got %d", e.FeatureLength(), len(features))
	}

	for i, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("feature %d is not finite: %v", i, f)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	samples := sineWave(440, 22050, 22050)

	first, err := e.Extract(samples, 22050)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := e.Extract(samples, 22050)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("feature %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestExtractLengthConstantAcrossInputs(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	inputs := []struct {
		samples []float32
		rate    int
	}{
		{sineWave(220, 8000, 4000), 8000},
		{sineWave(880, 44100, 44100), 44100},
		{make([]float32, 11025), 22050},
	}

	for _, in := range inputs {
		features, err := e.Extract(in.samples, in.rate)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if len(features) != e.FeatureLength() {
			t.Errorf("rate %d: expected %d features, got %d", in.rate, e.FeatureLength(), len(features))
		}
	}
}

func TestExtractEmptyWaveform(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	if _, err := e.Extract(nil, 22050); err == nil {
		t.Error("Expected error for empty waveform")
	}
	if _, err := e.Extract(sineWave(440, 22050, 100), 0); err == nil {
		t.Error("Expected error for zero sample rate")
	}
}
