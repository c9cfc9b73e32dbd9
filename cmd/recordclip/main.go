// Запись клипа с микрофона и (опционально) отправка на /predict
// Запуск: go run ./cmd/recordclip -seconds 3 -server http://localhost:8080
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gen2brain/malgo"

	"emosense/audio"
)

const (
	sampleRate = 22050
	channels   = 1
)

func main() {
	seconds := flag.Int("seconds", 3, "Recording duration in seconds")
	output := flag.String("out", "clip.wav", "Output file (.wav or .mp3)")
	server := flag.String("server", "", "If set, POST the clip to <server>/predict")
	flag.Parse()

	log.Printf("Recording %d seconds from the default microphone...", *seconds)

	samples, err := record(*seconds)
	if err != nil {
		log.Fatalf("Recording failed: %v", err)
	}

	if err := save(*output, samples); err != nil {
		log.Fatalf("Failed to save %s: %v", *output, err)
	}
	log.Printf("Saved %d samples to %s", len(samples), *output)

	if *server != "" {
		if err := sendForPrediction(*server, *output); err != nil {
			log.Fatalf("Prediction request failed: %v", err)
		}
	}
}

// record захватывает моно float32 с дефолтного устройства через miniaudio
func record(seconds int) ([]float32, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init malgo context: %w", err)
	}
	defer ctx.Uninit()
	defer ctx.Free()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = channels
	deviceConfig.SampleRate = sampleRate
	deviceConfig.Alsa.NoMMap = 1

	target := seconds * sampleRate
	samples := make([]float32, 0, target)
	done := make(chan struct{})

	onRecvFrames := func(pOutputSample, pInputSamples []byte, framecount uint32) {
		sampleCount := int(framecount) * channels
		if len(pInputSamples) != sampleCount*4 {
			return
		}
		if len(samples) >= target {
			return
		}

		for i := 0; i < sampleCount && len(samples) < target; i++ {
			bits := uint32(pInputSamples[i*4]) | uint32(pInputSamples[i*4+1])<<8 |
				uint32(pInputSamples[i*4+2])<<16 | uint32(pInputSamples[i*4+3])<<24
			samples = append(samples, math.Float32frombits(bits))
		}

		if len(samples) >= target {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onRecvFrames,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init capture device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return nil, fmt.Errorf("failed to start capture: %w", err)
	}

	select {
	case <-done:
	case <-time.After(time.Duration(seconds+5) * time.Second):
		return nil, fmt.Errorf("capture timed out")
	}

	if err := device.Stop(); err != nil {
		return nil, fmt.Errorf("failed to stop capture: %w", err)
	}

	return samples, nil
}

// save пишет клип в WAV или MP3 по расширению
func save(path string, samples []float32) error {
	if filepath.Ext(path) == ".mp3" {
		w, err := audio.NewMP3Writer(path, sampleRate, channels)
		if err != nil {
			return err
		}
		if err := w.Write(samples); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}

	w, err := audio.NewWAVWriter(path, sampleRate, channels)
	if err != nil {
		return err
	}
	if err := w.Write(samples); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// sendForPrediction отправляет файл на /predict и печатает ответ
func sendForPrediction(server, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := http.Post(server+"/predict", writer.FormDataContentType(), &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("bad response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s: %v", resp.Status, payload)
	}

	log.Printf("Energy: %v, Emotion: %v, Confidence: %v",
		payload["predicted_energy"], payload["predicted_emotion"], payload["confidence"])
	return nil
}
