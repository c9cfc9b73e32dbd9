// Package audio читает и пишет аудиофайлы: RIFF/WAVE и MP3,
// всегда в моно float32 с сохранением исходной частоты дискретизации.
package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DecodeFile декодирует аудиофайл в моно float32 сэмплы
// Формат выбирается по расширению: .mp3 -> go-mp3, иначе WAV
func DecodeFile(filePath string) ([]float32, int, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	if ext == ".mp3" {
		reader, err := NewMP3Reader(filePath)
		if err != nil {
			return nil, 0, err
		}
		defer reader.Close()

		samples, err := reader.ReadAllMono()
		if err != nil {
			return nil, 0, err
		}
		if len(samples) == 0 {
			return nil, 0, fmt.Errorf("no audio samples in %s", filePath)
		}
		return samples, reader.SampleRate(), nil
	}

	reader, err := NewWAVReader(filePath)
	if err != nil {
		return nil, 0, err
	}

	samples, err := reader.ReadAllMono()
	if err != nil {
		return nil, 0, err
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("no audio samples in %s", filePath)
	}
	return samples, reader.SampleRate(), nil
}
