package dsp

import "math"

const chromaBins = 12

// Chroma вычисляет хромаграмму (энергия по 12 высотным классам)
// Вход — спектрограмма мощности [frame][bin], выход [class][frame]
// Каждый фрейм нормирован на свой максимум
func Chroma(powerSpec [][]float64, sampleRate, nFFT int) [][]float64 {
	numFrames := len(powerSpec)
	numBins := nFFT/2 + 1

	filters := createChromaFilterbank(nFFT, sampleRate)

	chroma := make([][]float64, chromaBins)
	for c := 0; c < chromaBins; c++ {
		chroma[c] = make([]float64, numFrames)
	}

	for t := 0; t < numFrames; t++ {
		for c := 0; c < chromaBins; c++ {
			sum := 0.0
			for k := 1; k < numBins; k++ {
				sum += powerSpec[t][k] * filters[c][k]
			}
			chroma[c][t] = sum
		}

		// Нормируем фрейм на максимум; тишину оставляем нулевой
		maxVal := 0.0
		for c := 0; c < chromaBins; c++ {
			if chroma[c][t] > maxVal {
				maxVal = chroma[c][t]
			}
		}
		if maxVal > 1e-12 {
			for c := 0; c < chromaBins; c++ {
				chroma[c][t] /= maxVal
			}
		}
	}

	return chroma
}

// createChromaFilterbank строит веса бинов по высотным классам
// Каждый бин размазывается гауссианой (sigma = 1 полутон) вокруг своей высоты
func createChromaFilterbank(nFFT, sampleRate int) [][]float64 {
	numBins := nFFT/2 + 1

	filters := make([][]float64, chromaBins)
	for c := range filters {
		filters[c] = make([]float64, numBins)
	}

	const sigma = 1.0

	for k := 1; k < numBins; k++ {
		freq := float64(k) * float64(sampleRate) / float64(nFFT)
		if freq <= 0 {
			continue
		}

		// Непрерывная высота в полутонах относительно A440
		pitch := 69.0 + 12.0*math.Log2(freq/440.0)

		for c := 0; c < chromaBins; c++ {
			// Расстояние до ближайшей высоты класса c (по модулю октавы)
			d := math.Mod(pitch-float64(c), chromaBins)
			if d > 6 {
				d -= chromaBins
			} else if d < -6 {
				d += chromaBins
			}
			filters[c][k] = math.Exp(-0.5 * (d / sigma) * (d / sigma))
		}
	}

	return filters
}
