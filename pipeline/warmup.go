package pipeline

// Частота дискретизации прогревочного клипа
const warmupSampleRate = 22050

// Warmup прогоняет одну секунду тишины через весь конвейер,
// чтобы разовые инициализации библиотек случились до готовности,
// а не на первом запросе. Вызывается ровно один раз при старте
func (o *Orchestrator) Warmup() error {
	silence := make([]float32, warmupSampleRate)
	_, err := o.Predict(silence, warmupSampleRate)
	return err
}
