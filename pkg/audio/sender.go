package audio

import (
	"context"
	"time"

	"github.com/arzzra/rtpaudio/pkg/rtpframe"
)

// dtmfPayloadType — статический payload type телефонного события,
// зарезервированный отдельно от PCMU/PCMA на время DTMF-кадров.
const dtmfPayloadType = 101

// sendLoop захватывает кадры у device, кодирует их выбранным кодеком и
// отправляет в виде RTP-пакетов с темпом, сглаживающим джиттер захвата:
// перед каждой отправкой поток спит не более 80% номинального периода
// кадра, поэтому опоздавшие из-за медленного захвата кадры никогда не
// задерживаются дополнительно, а быстрые — не уходят в сеть пачками.
func (s *Session) sendLoop(ctx context.Context, device CaptureDevice, done chan struct{}) {
	defer close(done)

	frameSamples := s.cfg.samplesPerFrame()
	samples := make([]int16, frameSamples)
	payload := make([]byte, frameSamples)

	var runner *dtmfRunner

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		n, err := device.Read(samples)
		if err != nil {
			s.log.Error("capture device failed, stopping send loop", "error", err)
			return
		}
		if n < frameSamples {
			for i := n; i < frameSamples; i++ {
				samples[i] = 0
			}
		}

		if s.isMuted() {
			for i := range samples {
				samples[i] = 0
			}
		} else if s.cfg.MicGainFactor > 1 {
			applyMicGain(samples, s.cfg.MicGainFactor)
		}

		if runner == nil {
			if req := s.dtmf.take(); req != nil {
				runner = newDTMFRunner(req, s.sendTimestamp, s.cfg.SampleRate)
				metrics.dtmfEventsSent.WithLabelValues(s.id).Inc()
			}
		}

		var header rtpframe.Header
		var framePayload []byte

		if runner != nil {
			dtmfFrame, eventDone := runner.step(uint32(frameSamples))
			header = rtpframe.Header{
				Version:        2,
				PayloadType:    dtmfPayloadType,
				SequenceNumber: s.sendSeq,
				Timestamp:      runner.startTS,
				SSRC:           s.ssrc,
			}
			framePayload = rtpframe.MarshalDTMF(dtmfFrame)
			if eventDone {
				runner = nil
			}
		} else {
			encoded := s.codec.Encode(samples)
			copy(payload, encoded)
			header = rtpframe.Header{
				Version:        2,
				PayloadType:    s.cfg.PayloadType,
				SequenceNumber: s.sendSeq,
				Timestamp:      s.sendTimestamp,
				SSRC:           s.ssrc,
			}
			framePayload = payload[:len(encoded)]
		}

		elapsed := time.Since(frameStart)
		nominal := time.Duration(float64(s.cfg.Ptime) * 0.8)
		if sleep := nominal - elapsed; sleep > 0 {
			time.Sleep(sleep)
		}

		packet := rtpframe.Marshal(header, framePayload)
		if _, err := s.socket.Send(packet); err != nil {
			s.log.Debug("send failed", "error", err, "seq", s.sendSeq)
		} else {
			metrics.packetsSent.WithLabelValues(s.id).Inc()
		}

		s.sendSeq++
		s.sendTimestamp += uint32(frameSamples)
	}
}

// applyMicGain усиливает сигнал микрофона в factor раз, насыщая входной
// сэмпл по порогу ±(32768/factor) до умножения, а результат умножения
// насыщает до ±32767, чтобы масштабирование не выходило за диапазон int16.
func applyMicGain(samples []int16, factor int) {
	limit := int32(32768 / factor)
	for i, s := range samples {
		v := int32(s)
		if v > limit {
			v = limit
		} else if v < -limit {
			v = -limit
		}
		v *= int32(factor)
		if v > 32767 {
			v = 32767
		} else if v < -32767 {
			v = -32767
		}
		samples[i] = int16(v)
	}
}
