package dsp

import "math"

// MFCC вычисляет кепстральные коэффициенты из log-mel спектрограммы
// Вход [frame][mel], выход [coef][frame] (DCT-II, ортонормированная)
func MFCC(melDB [][]float64, nMFCC int) [][]float64 {
	numFrames := len(melDB)
	if numFrames == 0 {
		return nil
	}
	nMels := len(melDB[0])

	// Предвычисляем DCT базис [nMFCC][nMels]
	basis := make([][]float64, nMFCC)
	for k := 0; k < nMFCC; k++ {
		basis[k] = make([]float64, nMels)
		scale := math.Sqrt(2.0 / float64(nMels))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(nMels))
		}
		for n := 0; n < nMels; n++ {
			basis[k][n] = scale * math.Cos(math.Pi*float64(k)*(2*float64(n)+1)/(2*float64(nMels)))
		}
	}

	mfcc := make([][]float64, nMFCC)
	for k := 0; k < nMFCC; k++ {
		mfcc[k] = make([]float64, numFrames)
		for t := 0; t < numFrames; t++ {
			sum := 0.0
			for n := 0; n < nMels; n++ {
				sum += basis[k][n] * melDB[t][n]
			}
			mfcc[k][t] = sum
		}
	}

	return mfcc
}

// Delta вычисляет дельты (производные по времени) регрессионной формулой
// для каждой строки [coef][frame]; края дополняются повторением
func Delta(rows [][]float64, width int) [][]float64 {
	if width%2 == 0 {
		width++
	}

	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = deltaRow(row, width)
	}
	return out
}

func deltaRow(row []float64, width int) []float64 {
	n := len(row)
	out := make([]float64, n)

	// Для очень коротких рядов сужаем окно
	w := width
	if w > n {
		w = n
		if w%2 == 0 {
			w--
		}
	}
	if w < 3 {
		return out
	}

	half := w / 2
	var denom float64
	for d := 1; d <= half; d++ {
		denom += 2 * float64(d) * float64(d)
	}

	at := func(i int) float64 {
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		return row[i]
	}

	for t := 0; t < n; t++ {
		sum := 0.0
		for d := 1; d <= half; d++ {
			sum += float64(d) * (at(t+d) - at(t-d))
		}
		out[t] = sum / denom
	}

	return out
}
