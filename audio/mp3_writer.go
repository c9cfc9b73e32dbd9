package audio

import (
	"fmt"
	"os"

	"github.com/braheezy/shine-mp3/pkg/mp3"
)

// shine кодирует кадрами по 1152 сэмпла на канал
const mp3FrameSamples = 1152

// MP3Writer кодирует float32 сэмплы в MP3 (чистый Go, без FFmpeg)
// Не потокобезопасен: пишущая сторона одна
type MP3Writer struct {
	file     *os.File
	encoder  *mp3.Encoder
	channels int
	pending  []int16
	closed   bool
}

// NewMP3Writer создаёт MP3 файл и кодировщик под него
func NewMP3Writer(path string, sampleRate, channels int) (*MP3Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 file: %w", err)
	}

	return &MP3Writer{
		file:     file,
		encoder:  mp3.NewEncoder(sampleRate, channels),
		channels: channels,
		pending:  make([]int16, 0, mp3FrameSamples*channels*4),
	}, nil
}

// Write квантует сэмплы и кодирует накопившиеся целые кадры;
// неполный остаток ждёт следующего Write или Close
func (w *MP3Writer) Write(samples []float32) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	for _, s := range samples {
		w.pending = append(w.pending, pcm16(s))
	}

	frame := mp3FrameSamples * w.channels
	if n := (len(w.pending) / frame) * frame; n > 0 {
		w.encoder.Write(w.file, w.pending[:n])
		w.pending = append(w.pending[:0], w.pending[n:]...)
	}

	return nil
}

// Close дополняет последний кадр тишиной и закрывает файл
func (w *MP3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if len(w.pending) > 0 {
		frame := mp3FrameSamples * w.channels
		for len(w.pending)%frame != 0 {
			w.pending = append(w.pending, 0)
		}
		w.encoder.Write(w.file, w.pending)
		w.pending = nil
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
