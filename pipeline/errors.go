package pipeline

import (
	"errors"
	"fmt"
)

// FailureKind классифицирует отказы конвейера; вызывающий код ветвится
// по значению, а не по тексту ошибки
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureLoad                // артефакт отсутствует или не читается (фатально для готовности)
	FailureExtraction          // не удалось декодировать аудио или посчитать признаки
	FailureMissingInput        // запрос без аудиофайла
	FailureInference           // скейлер/классификатор отверг вектор (рассинхрон артефактов)
)

// String возвращает имя вида отказа
func (k FailureKind) String() string {
	switch k {
	case FailureLoad:
		return "load"
	case FailureExtraction:
		return "extraction"
	case FailureMissingInput:
		return "missing_input"
	case FailureInference:
		return "inference"
	default:
		return "unknown"
	}
}

// Error отказ конвейера с видом и стадией
type Error struct {
	Kind  FailureKind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failure at %s", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%s failure at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newFailure(kind FailureKind, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

func failuref(kind FailureKind, stage, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// KindOf возвращает вид отказа из цепочки ошибок
func KindOf(err error) FailureKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return FailureUnknown
}
