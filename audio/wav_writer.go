package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sync"
)

// pcm16 квантует float32 [-1.0, 1.0] в signed 16-bit,
// округляя к ближайшему уровню (усечение удваивает ошибку квантования)
func pcm16(s float32) int16 {
	if s > 1.0 {
		s = 1.0
	} else if s < -1.0 {
		s = -1.0
	}
	return int16(math.Round(float64(s) * 32767))
}

// WAVWriter потоковый писатель WAV файлов (PCM16)
type WAVWriter struct {
	file           *os.File
	filePath       string
	sampleRate     int
	channels       int
	samplesWritten int64
	mu             sync.Mutex
}

// NewWAVWriter создаёт новый WAV writer
func NewWAVWriter(filePath string, sampleRate, channels int) (*WAVWriter, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create WAV file: %w", err)
	}

	w := &WAVWriter{
		file:       file,
		filePath:   filePath,
		sampleRate: sampleRate,
		channels:   channels,
	}

	// Записываем placeholder header
	if err := w.writeHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return w, nil
}

const wavBitsPerSample = 16

// writeHeader записывает WAV header
func (w *WAVWriter) writeHeader() error {
	w.file.Seek(0, 0)

	byteRate := w.sampleRate * w.channels * wavBitsPerSample / 8
	blockAlign := w.channels * wavBitsPerSample / 8
	dataSize := uint32(w.samplesWritten * 2)

	// RIFF header
	w.file.WriteString("RIFF")
	binary.Write(w.file, binary.LittleEndian, uint32(36+dataSize))
	w.file.WriteString("WAVE")

	// fmt chunk
	w.file.WriteString("fmt ")
	binary.Write(w.file, binary.LittleEndian, uint32(16))           // chunk size
	binary.Write(w.file, binary.LittleEndian, uint16(1))            // PCM
	binary.Write(w.file, binary.LittleEndian, uint16(w.channels))   // channels
	binary.Write(w.file, binary.LittleEndian, uint32(w.sampleRate)) // sample rate
	binary.Write(w.file, binary.LittleEndian, uint32(byteRate))     // byte rate
	binary.Write(w.file, binary.LittleEndian, uint16(blockAlign))   // block align
	binary.Write(w.file, binary.LittleEndian, uint16(wavBitsPerSample))

	// data chunk
	w.file.WriteString("data")
	binary.Write(w.file, binary.LittleEndian, dataSize)

	return nil
}

// Write записывает float32 семплы в файл (конвертирует в PCM16)
func (w *WAVWriter) Write(samples []float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range samples {
		if err := binary.Write(w.file, binary.LittleEndian, pcm16(s)); err != nil {
			return err
		}
		w.samplesWritten++
	}

	return nil
}

// SamplesWritten возвращает количество записанных семплов
func (w *WAVWriter) SamplesWritten() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.samplesWritten
}

// FilePath возвращает путь к файлу
func (w *WAVWriter) FilePath() string {
	return w.filePath
}

// Close завершает запись: обновляет header и закрывает файл
func (w *WAVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeHeader(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
