package dsp

import "math"

const tonnetzDims = 6

// Tonnetz проецирует хромаграмму в 6-мерное тональное пространство:
// окружности квинт, малых терций и больших терций (sin/cos пары)
// Вход [class][frame], выход [dim][frame]
func Tonnetz(chroma [][]float64) [][]float64 {
	if len(chroma) != chromaBins {
		return nil
	}
	numFrames := 0
	if len(chroma) > 0 {
		numFrames = len(chroma[0])
	}

	// Углы на окружность: квинты 7π/6, малые терции 3π/2, большие терции 2π/3
	scales := []float64{7.0 / 6.0, 7.0 / 6.0, 3.0 / 2.0, 3.0 / 2.0, 2.0 / 3.0, 2.0 / 3.0}
	radii := []float64{1, 1, 1, 1, 0.5, 0.5}

	basis := make([][]float64, tonnetzDims)
	for d := 0; d < tonnetzDims; d++ {
		basis[d] = make([]float64, chromaBins)
		for j := 0; j < chromaBins; j++ {
			angle := scales[d] * math.Pi * float64(j)
			if d%2 == 0 {
				basis[d][j] = radii[d] * math.Sin(angle)
			} else {
				basis[d][j] = radii[d] * math.Cos(angle)
			}
		}
	}

	out := make([][]float64, tonnetzDims)
	for d := 0; d < tonnetzDims; d++ {
		out[d] = make([]float64, numFrames)
	}

	for t := 0; t < numFrames; t++ {
		// L1-нормировка фрейма хромаграммы
		var norm float64
		for c := 0; c < chromaBins; c++ {
			norm += math.Abs(chroma[c][t])
		}
		if norm < 1e-12 {
			continue
		}

		for d := 0; d < tonnetzDims; d++ {
			sum := 0.0
			for c := 0; c < chromaBins; c++ {
				sum += basis[d][c] * chroma[c][t] / norm
			}
			out[d][t] = sum
		}
	}

	return out
}
