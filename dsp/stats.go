package dsp

import "math"

// Moments возвращает среднее, СКО, асимметрию и эксцесс ряда
// Используются популяционные формулы (деление на N, без поправок на смещение)
// Для константного ряда асимметрия 0, эксцесс -3
func Moments(xs []float64) (mean, std, skew, exKurt float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0, 0, -3
	}

	for _, x := range xs {
		mean += x
	}
	mean /= n

	var m2, m3, m4 float64
	for _, x := range xs {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n

	std = math.Sqrt(m2)

	if m2 < 1e-24 {
		return mean, std, 0, -3
	}

	skew = m3 / math.Pow(m2, 1.5)
	exKurt = m4/(m2*m2) - 3
	return mean, std, skew, exKurt
}

// MeanStd возвращает среднее и популяционное СКО ряда
func MeanStd(xs []float64) (mean, std float64) {
	mean, std, _, _ = Moments(xs)
	return mean, std
}

// ZeroCrossingRate считает долю смен знака в центрированных фреймах
func ZeroCrossingRate(samples []float32, frameLength, hop int) []float64 {
	numFrames := len(samples)/hop + 1
	out := make([]float64, numFrames)

	for frame := 0; frame < numFrames; frame++ {
		start := frame*hop - frameLength/2
		crossings := 0
		for i := 1; i < frameLength; i++ {
			a := sampleAt(samples, start+i-1)
			b := sampleAt(samples, start+i)
			if (a >= 0) != (b >= 0) {
				crossings++
			}
		}
		out[frame] = float64(crossings) / float64(frameLength-1)
	}

	return out
}

// RMS считает среднеквадратичную энергию центрированных фреймов
func RMS(samples []float32, frameLength, hop int) []float64 {
	numFrames := len(samples)/hop + 1
	out := make([]float64, numFrames)

	for frame := 0; frame < numFrames; frame++ {
		start := frame*hop - frameLength/2
		var sum float64
		for i := 0; i < frameLength; i++ {
			s := float64(sampleAt(samples, start+i))
			sum += s * s
		}
		out[frame] = math.Sqrt(sum / float64(frameLength))
	}

	return out
}

// sampleAt возвращает сэмпл с нулевым дополнением за краями
func sampleAt(samples []float32, i int) float32 {
	if i < 0 || i >= len(samples) {
		return 0
	}
	return samples[i]
}
