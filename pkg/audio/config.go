package audio

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arzzra/rtpaudio/pkg/codec"
)

// Config описывает параметры одной голосовой сессии. Поля сгруппированы
// так же, как в конфигурации многосессионного медиа-слоя: кодек и тайминг,
// сетевые параметры, необязательные хуки.
type Config struct {
	// PayloadType выбирает кодек: 0 (PCMU) или 8 (PCMA).
	PayloadType uint8
	// SampleRate — частота дискретизации в Гц. Для G.711 всегда 8000.
	SampleRate uint32
	// Ptime — длительность одного кадра захвата/отправки.
	Ptime time.Duration

	// BindAddr — локальный адрес для привязки RTP-сокета.
	BindAddr string

	// MicGainFactor делит порог насыщения перед усилением входного сигнала
	// микрофона; 1 отключает усиление. Должен быть положительным.
	MicGainFactor int

	// EntropySource — источник случайности для SSRC/seq/timestamp
	// инициализации. По умолчанию crypto/rand.Reader.
	EntropySource io.Reader

	// Logger — получатель структурных логов сессии. По умолчанию slog.Default().
	Logger *slog.Logger
}

// DefaultConfig возвращает конфигурацию с разумными значениями по умолчанию
// для µ-law 8kHz/20ms сессии.
func DefaultConfig() Config {
	return Config{
		PayloadType:   codec.Mulaw{}.PayloadType(),
		SampleRate:    8000,
		Ptime:         20 * time.Millisecond,
		BindAddr:      "0.0.0.0",
		MicGainFactor: 1,
	}
}

// samplesPerFrame возвращает число сэмплов в одном кадре заданной
// длительности при заданной частоте дискретизации.
func (c Config) samplesPerFrame() int {
	return int(c.SampleRate) * int(c.Ptime/time.Millisecond) / 1000
}

func (c Config) validate() error {
	if codec.ForPayloadType(c.PayloadType) == nil {
		return fmt.Errorf("audio: unsupported payload type %d", c.PayloadType)
	}
	if c.SampleRate == 0 {
		return fmt.Errorf("audio: sample rate must be positive")
	}
	if c.Ptime <= 0 {
		return fmt.Errorf("audio: ptime must be positive")
	}
	if c.samplesPerFrame() <= 0 {
		return fmt.Errorf("audio: ptime %s too small for sample rate %d", c.Ptime, c.SampleRate)
	}
	if c.MicGainFactor <= 0 {
		return fmt.Errorf("audio: mic gain factor must be positive")
	}
	return nil
}
