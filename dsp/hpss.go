package dsp

import "sort"

// HarmonicSpectrogram выделяет гармоническую составляющую спектрограммы
// медианной фильтрацией: гармоники устойчивы по времени, перкуссия — по частоте
// Вход и выход [frame][bin] (мощность); сигнал не реконструируется
func HarmonicSpectrogram(powerSpec [][]float64, kernel int) [][]float64 {
	numFrames := len(powerSpec)
	if numFrames == 0 {
		return nil
	}
	numBins := len(powerSpec[0])

	if kernel%2 == 0 {
		kernel++
	}
	half := kernel / 2

	// Медиана по времени (вдоль фреймов) для каждого бина
	harm := make([][]float64, numFrames)
	for t := range harm {
		harm[t] = make([]float64, numBins)
	}
	window := make([]float64, 0, kernel)
	for k := 0; k < numBins; k++ {
		for t := 0; t < numFrames; t++ {
			window = window[:0]
			for d := -half; d <= half; d++ {
				i := t + d
				if i >= 0 && i < numFrames {
					window = append(window, powerSpec[i][k])
				}
			}
			harm[t][k] = median(window)
		}
	}

	// Медиана по частоте (вдоль бинов) для каждого фрейма
	perc := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		perc[t] = make([]float64, numBins)
		for k := 0; k < numBins; k++ {
			window = window[:0]
			for d := -half; d <= half; d++ {
				i := k + d
				if i >= 0 && i < numBins {
					window = append(window, powerSpec[t][i])
				}
			}
			perc[t][k] = median(window)
		}
	}

	// Мягкая маска Винера (степень 2)
	out := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		out[t] = make([]float64, numBins)
		for k := 0; k < numBins; k++ {
			h := harm[t][k] * harm[t][k]
			p := perc[t][k] * perc[t][k]
			denom := h + p
			if denom < 1e-24 {
				continue
			}
			out[t][k] = powerSpec[t][k] * h / denom
		}
	}

	return out
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	tmp := make([]float64, len(xs))
	copy(tmp, xs)
	sort.Float64s(tmp)
	mid := len(tmp) / 2
	if len(tmp)%2 == 1 {
		return tmp[mid]
	}
	return (tmp[mid-1] + tmp[mid]) / 2
}
