package dsp

import "fmt"

// ExtractorConfig параметры анализа; менять нельзя после обучения моделей,
// иначе размер и порядок вектора признаков разойдутся со скейлерами
type ExtractorConfig struct {
	NFFT          int
	HopLength     int
	NMFCC         int
	NMels         int
	ContrastBands int
	ContrastFMin  float64
	ContrastQuant float64
	HPSSKernel    int
	DeltaWidth    int
}

// DefaultExtractorConfig возвращает параметры, с которыми обучались артефакты
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		NFFT:          2048,
		HopLength:     512,
		NMFCC:         13,
		NMels:         128,
		ContrastBands: 6,
		ContrastFMin:  200.0,
		ContrastQuant: 0.02,
		HPSSKernel:    31,
		DeltaWidth:    9,
	}
}

// Extractor строит вектор признаков фиксированной длины из аудиосигнала
// Чистая функция: одинаковые сэмплы и частота дают идентичный вектор
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor создаёт экстрактор признаков
func NewExtractor(cfg ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// FeatureLength возвращает длину вектора признаков
// Порядок и размер блоков фиксированы: MFCC+Δ+ΔΔ по 4 статистики,
// хромаграмма/mel/контраст/tonnetz по 2, ZCR и RMS по 2 скаляра
func (e *Extractor) FeatureLength() int {
	return e.cfg.NMFCC*3*4 + // MFCC + delta + delta2: mean/std/skew/kurtosis
		chromaBins*2 +
		e.cfg.NMels*2 +
		(e.cfg.ContrastBands+1)*2 +
		tonnetzDims*2 +
		2 + // ZCR
		2 // RMS
}

// Extract вычисляет вектор признаков
func (e *Extractor) Extract(samples []float32, sampleRate int) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty waveform")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	features := make([]float64, 0, e.FeatureLength())

	stft := NewSTFT(e.cfg.NFFT, e.cfg.HopLength)
	powerSpec := stft.PowerSpectrogram(samples)

	// 1. MFCC + дельты + дельты второго порядка, 4 статистики на строку
	mel := MelSpectrogram(powerSpec, sampleRate, e.cfg.NFFT, e.cfg.NMels)
	mfcc := MFCC(PowerToDB(mel, 1.0), e.cfg.NMFCC)
	delta := Delta(mfcc, e.cfg.DeltaWidth)
	delta2 := Delta(delta, e.cfg.DeltaWidth)
	for _, block := range [][][]float64{mfcc, delta, delta2} {
		for _, row := range block {
			mean, std, skew, kurt := Moments(row)
			features = append(features, mean, std, skew, kurt)
		}
	}

	// 2. Хромаграмма
	for _, row := range Chroma(powerSpec, sampleRate, e.cfg.NFFT) {
		mean, std := MeanStd(row)
		features = append(features, mean, std)
	}

	// 3. Log-mel спектрограмма в dB относительно собственного пика
	melDB := PowerToDB(mel, 0)
	for m := 0; m < e.cfg.NMels; m++ {
		row := make([]float64, len(melDB))
		for t := range melDB {
			row[t] = melDB[t][m]
		}
		mean, std := MeanStd(row)
		features = append(features, mean, std)
	}

	// 4. Спектральный контраст
	contrast := SpectralContrast(powerSpec, sampleRate, e.cfg.NFFT,
		e.cfg.ContrastBands, e.cfg.ContrastFMin, e.cfg.ContrastQuant)
	for _, row := range contrast {
		mean, std := MeanStd(row)
		features = append(features, mean, std)
	}

	// 5. Tonnetz по гармонической составляющей
	harmonic := HarmonicSpectrogram(powerSpec, e.cfg.HPSSKernel)
	for _, row := range Tonnetz(Chroma(harmonic, sampleRate, e.cfg.NFFT)) {
		mean, std := MeanStd(row)
		features = append(features, mean, std)
	}

	// 6. Zero crossing rate
	zcrMean, zcrStd := MeanStd(ZeroCrossingRate(samples, e.cfg.NFFT, e.cfg.HopLength))
	features = append(features, zcrMean, zcrStd)

	// 7. RMS энергия
	rmsMean, rmsStd := MeanStd(RMS(samples, e.cfg.NFFT, e.cfg.HopLength))
	features = append(features, rmsMean, rmsStd)

	if len(features) != e.FeatureLength() {
		return nil, fmt.Errorf("feature vector length %d, expected %d", len(features), e.FeatureLength())
	}

	return features, nil
}
