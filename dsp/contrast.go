package dsp

import (
	"math"
	"sort"
)

// SpectralContrast вычисляет контраст пиков и впадин по октавным полосам
// Вход — спектрограмма мощности [frame][bin], выход [band][frame],
// полос nBands+1 (нижняя полоса покрывает частоты ниже fMin)
func SpectralContrast(powerSpec [][]float64, sampleRate, nFFT, nBands int, fMin, quantile float64) [][]float64 {
	numFrames := len(powerSpec)
	numBins := nFFT / 2

	// Границы полос: [0, fMin, fMin*2, ..., fMin*2^nBands]
	edges := make([]float64, nBands+2)
	edges[0] = 0
	for i := 1; i < nBands+2; i++ {
		edges[i] = fMin * math.Pow(2, float64(i-1))
	}

	binFreq := func(k int) float64 {
		return float64(k) * float64(sampleRate) / float64(nFFT)
	}

	contrast := make([][]float64, nBands+1)
	for b := range contrast {
		contrast[b] = make([]float64, numFrames)
	}

	logClamped := func(v float64) float64 {
		return 10 * math.Log10(math.Max(v, dbAmin))
	}

	band := make([]float64, 0, numBins)
	for b := 0; b < nBands+1; b++ {
		lo, hi := edges[b], edges[b+1]

		for t := 0; t < numFrames; t++ {
			band = band[:0]
			for k := 0; k <= numBins; k++ {
				f := binFreq(k)
				inTop := b == nBands && f <= float64(sampleRate)/2
				if f >= lo && (f < hi || inTop) {
					// Контраст считается по амплитудному спектру
					band = append(band, math.Sqrt(powerSpec[t][k]))
				}
			}
			if len(band) == 0 {
				continue
			}

			sort.Float64s(band)

			idx := int(math.Round(quantile * float64(len(band))))
			if idx < 1 {
				idx = 1
			}

			valley := 0.0
			for i := 0; i < idx; i++ {
				valley += band[i]
			}
			valley /= float64(idx)

			peak := 0.0
			for i := len(band) - idx; i < len(band); i++ {
				peak += band[i]
			}
			peak /= float64(idx)

			contrast[b][t] = logClamped(peak) - logClamped(valley)
		}
	}

	return contrast
}
