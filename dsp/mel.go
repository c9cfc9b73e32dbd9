package dsp

import "math"

// MelSpectrogram применяет mel-фильтры к спектрограмме мощности
// Вход [frame][bin], выход [frame][mel]
func MelSpectrogram(powerSpec [][]float64, sampleRate, nFFT, nMels int) [][]float64 {
	filters := createMelFilterbank(nFFT, nMels, sampleRate)

	mel := make([][]float64, len(powerSpec))
	for t, frame := range powerSpec {
		mel[t] = make([]float64, nMels)
		for m := 0; m < nMels; m++ {
			sum := 0.0
			for k := 0; k < len(frame); k++ {
				sum += frame[k] * filters[m][k]
			}
			mel[t][m] = sum
		}
	}

	return mel
}

const (
	dbAmin  = 1e-10
	dbTopDB = 80.0
)

// PowerToDB переводит спектрограмму мощности в децибелы: 10*log10(S/ref)
// Значения ниже max-topDB клампятся. ref <= 0 означает ref = максимум спектра
func PowerToDB(spec [][]float64, ref float64) [][]float64 {
	if ref <= 0 {
		ref = dbAmin
		for _, frame := range spec {
			for _, v := range frame {
				if v > ref {
					ref = v
				}
			}
		}
	}

	logRef := 10 * math.Log10(math.Max(ref, dbAmin))

	out := make([][]float64, len(spec))
	maxDB := math.Inf(-1)
	for t, frame := range spec {
		out[t] = make([]float64, len(frame))
		for i, v := range frame {
			db := 10*math.Log10(math.Max(v, dbAmin)) - logRef
			out[t][i] = db
			if db > maxDB {
				maxDB = db
			}
		}
	}

	// Клампим динамический диапазон
	floor := maxDB - dbTopDB
	for t := range out {
		for i, v := range out[t] {
			if v < floor {
				out[t][i] = floor
			}
		}
	}

	return out
}

// createMelFilterbank создаёт mel-фильтры (HTK formula, работает в Hz)
func createMelFilterbank(nFFT, nMels, sampleRate int) [][]float64 {
	hzToMel := func(hz float64) float64 {
		return 2595.0 * math.Log10(1.0+hz/700.0)
	}
	melToHz := func(mel float64) float64 {
		return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
	}

	numBins := nFFT/2 + 1
	fMax := float64(sampleRate) / 2.0

	// Частоты для каждого FFT bin
	allFreqs := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		allFreqs[i] = float64(i) * fMax / float64(numBins-1)
	}

	// Mel points (nMels + 2 точек: left edge, centers, right edge)
	mMin := hzToMel(0)
	mMax := hzToMel(fMax)
	fPts := make([]float64, nMels+2)
	for i := 0; i < nMels+2; i++ {
		mel := mMin + float64(i)*(mMax-mMin)/float64(nMels+1)
		fPts[i] = melToHz(mel)
	}

	fDiff := make([]float64, nMels+1)
	for i := 0; i < nMels+1; i++ {
		fDiff[i] = fPts[i+1] - fPts[i]
	}

	filters := make([][]float64, nMels)
	for m := 0; m < nMels; m++ {
		filters[m] = make([]float64, numBins)

		for k := 0; k < numBins; k++ {
			freq := allFreqs[k]

			lower := (freq - fPts[m]) / fDiff[m]
			upper := (fPts[m+2] - freq) / fDiff[m+1]

			val := math.Min(lower, upper)
			if val < 0 {
				val = 0
			}
			filters[m][k] = val
		}
	}

	return filters
}
