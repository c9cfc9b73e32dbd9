package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Reader читает MP3 файлы используя чистый Go (без FFmpeg)
type MP3Reader struct {
	decoder    *mp3.Decoder
	file       *os.File
	sampleRate int
	length     int64 // длина в байтах (signed 16-bit stereo PCM)
}

// NewMP3Reader открывает MP3 файл для чтения
func NewMP3Reader(filePath string) (*MP3Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	// go-mp3 возвращает длину в байтах и всегда декодирует в стерео
	return &MP3Reader{
		decoder:    decoder,
		file:       file,
		sampleRate: decoder.SampleRate(),
		length:     decoder.Length(),
	}, nil
}

// SampleRate возвращает частоту дискретизации
func (r *MP3Reader) SampleRate() int {
	return r.sampleRate
}

// Duration возвращает длительность в секундах
func (r *MP3Reader) Duration() float64 {
	// length в байтах, 4 байта на сэмпл (16-bit stereo)
	samples := r.length / 4
	return float64(samples) / float64(r.sampleRate)
}

// ReadAllMono читает весь файл и возвращает моно float32 [-1.0, 1.0]
// (среднее левого и правого каналов, исходная частота дискретизации)
func (r *MP3Reader) ReadAllMono() ([]float32, error) {
	// Читаем весь PCM (signed 16-bit stereo, interleaved)
	pcmData := make([]byte, r.length)
	n, err := io.ReadFull(r.decoder, pcmData)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}
	pcmData = pcmData[:n]

	numSamples := n / 4 // 2 bytes per sample * 2 channels

	mono := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		left := int16(binary.LittleEndian.Uint16(pcmData[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcmData[i*4+2:]))
		mono[i] = (float32(left) + float32(right)) / 2.0 / 32768.0
	}

	return mono, nil
}

// Close закрывает файл
func (r *MP3Reader) Close() error {
	return r.file.Close()
}
