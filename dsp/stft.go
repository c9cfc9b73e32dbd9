// Package dsp вычисляет спектральные и временные признаки аудиосигнала:
// STFT, mel-спектрограмма, MFCC, хромаграмма, спектральный контраст,
// tonnetz, ZCR и RMS. Всё на чистом Go поверх gonum FFT.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// STFT оконное преобразование Фурье с центрированными фреймами
type STFT struct {
	nFFT   int
	hop    int
	window []float64
	fft    *fourier.FFT
}

// NewSTFT создаёт STFT процессор (окно Ханна размера nFFT)
func NewSTFT(nFFT, hop int) *STFT {
	return &STFT{
		nFFT:   nFFT,
		hop:    hop,
		window: createHannWindow(nFFT),
		fft:    fourier.NewFFT(nFFT),
	}
}

// NumBins возвращает количество частотных бинов (только положительные частоты)
func (s *STFT) NumBins() int {
	return s.nFFT/2 + 1
}

// NumFrames возвращает количество фреймов для сигнала длины n
func (s *STFT) NumFrames(n int) int {
	return n/s.hop + 1
}

// PowerSpectrogram вычисляет спектрограмму мощности [frame][bin]
// Фреймы центрированы: центр фрейма t на позиции t*hop, края дополняются нулями
func (s *STFT) PowerSpectrogram(samples []float32) [][]float64 {
	numFrames := s.NumFrames(len(samples))
	numBins := s.NumBins()

	spec := make([][]float64, numFrames)
	frameData := make([]float64, s.nFFT)

	for frame := 0; frame < numFrames; frame++ {
		frameStart := frame*s.hop - s.nFFT/2

		for i := 0; i < s.nFFT; i++ {
			sampleIdx := frameStart + i
			if sampleIdx >= 0 && sampleIdx < len(samples) {
				frameData[i] = float64(samples[sampleIdx]) * s.window[i]
			} else {
				frameData[i] = 0
			}
		}

		coeffs := s.fft.Coefficients(nil, frameData)

		spec[frame] = make([]float64, numBins)
		for i := 0; i < numBins; i++ {
			re := real(coeffs[i])
			im := imag(coeffs[i])
			spec[frame][i] = re*re + im*im
		}
	}

	return spec
}

// BinFrequency возвращает частоту бина k в герцах
func (s *STFT) BinFrequency(k, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / float64(s.nFFT)
}

// createHannWindow создаёт окно Ханна
func createHannWindow(size int) []float64 {
	window := make([]float64, size)
	for i := 0; i < size; i++ {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return window
}
