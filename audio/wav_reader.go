package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WAVReader читает RIFF/WAVE файлы (чистый Go, без FFmpeg)
// Поддерживает PCM 16-bit и IEEE float32, моно и стерео
type WAVReader struct {
	sampleRate    int
	channels      int
	bitsPerSample int
	format        uint16
	data          []byte
}

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// NewWAVReader открывает и разбирает WAV файл
func NewWAVReader(filePath string) (*WAVReader, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file: %s", filePath)
	}

	r := &WAVReader{}

	// Идём по чанкам: fmt -> data, остальные пропускаем
	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		pos += 8
		if pos+chunkSize > len(raw) {
			chunkSize = len(raw) - pos
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("malformed fmt chunk (%d bytes)", chunkSize)
			}
			r.format = binary.LittleEndian.Uint16(raw[pos : pos+2])
			r.channels = int(binary.LittleEndian.Uint16(raw[pos+2 : pos+4]))
			r.sampleRate = int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
			r.bitsPerSample = int(binary.LittleEndian.Uint16(raw[pos+14 : pos+16]))
		case "data":
			r.data = raw[pos : pos+chunkSize]
		}

		// Чанки выровнены по 2 байта
		pos += chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	if r.sampleRate == 0 || r.channels == 0 {
		return nil, fmt.Errorf("missing fmt chunk in %s", filePath)
	}
	if r.data == nil {
		return nil, fmt.Errorf("missing data chunk in %s", filePath)
	}
	if r.format != wavFormatPCM && r.format != wavFormatFloat {
		return nil, fmt.Errorf("unsupported WAV format tag %d (want PCM or float)", r.format)
	}
	if r.format == wavFormatPCM && r.bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported PCM bit depth %d (want 16)", r.bitsPerSample)
	}
	if r.format == wavFormatFloat && r.bitsPerSample != 32 {
		return nil, fmt.Errorf("unsupported float bit depth %d (want 32)", r.bitsPerSample)
	}

	return r, nil
}

// SampleRate возвращает частоту дискретизации
func (r *WAVReader) SampleRate() int {
	return r.sampleRate
}

// Channels возвращает количество каналов
func (r *WAVReader) Channels() int {
	return r.channels
}

// Duration возвращает длительность в секундах
func (r *WAVReader) Duration() float64 {
	bytesPerFrame := r.channels * r.bitsPerSample / 8
	if bytesPerFrame == 0 {
		return 0
	}
	frames := len(r.data) / bytesPerFrame
	return float64(frames) / float64(r.sampleRate)
}

// ReadAllMono читает весь файл и возвращает моно float32 [-1.0, 1.0]
// Для стерео берётся среднее каналов, частота дискретизации сохраняется
func (r *WAVReader) ReadAllMono() ([]float32, error) {
	bytesPerSample := r.bitsPerSample / 8
	bytesPerFrame := r.channels * bytesPerSample
	numFrames := len(r.data) / bytesPerFrame

	mono := make([]float32, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float32
		for c := 0; c < r.channels; c++ {
			off := i*bytesPerFrame + c*bytesPerSample
			switch r.format {
			case wavFormatPCM:
				s := int16(binary.LittleEndian.Uint16(r.data[off:]))
				sum += float32(s) / 32768.0
			case wavFormatFloat:
				bits := binary.LittleEndian.Uint32(r.data[off:])
				sum += math.Float32frombits(bits)
			}
		}
		mono[i] = sum / float32(r.channels)
	}

	return mono, nil
}
