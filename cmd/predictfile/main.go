// Офлайн предсказание одного файла без HTTP слоя
// Запуск: go run ./cmd/predictfile -artifacts export clip.wav
package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"emosense/audio"
	"emosense/dsp"
	"emosense/pipeline"
)

func main() {
	artifacts := flag.String("artifacts", "export", "Directory with pipeline artifacts")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: predictfile [-artifacts dir] <audio-file>")
	}
	path := flag.Arg(0)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	registry, err := pipeline.Load(*artifacts, logger)
	if err != nil {
		log.Fatalf("Failed to load artifacts: %v", err)
	}
	defer registry.Close()

	samples, sampleRate, err := audio.DecodeFile(path)
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", path, err)
	}

	extractor := dsp.NewExtractor(dsp.DefaultExtractorConfig())
	orchestrator := pipeline.NewOrchestrator(registry, extractor, logger)

	result, err := orchestrator.Predict(samples, sampleRate)
	if err != nil {
		log.Fatalf("Prediction failed (%s): %v", pipeline.KindOf(err), err)
	}

	fmt.Printf("energy=%s emotion=%s confidence=%.2f%%\n",
		result.Energy, result.Emotion, result.Confidence*100)
}
