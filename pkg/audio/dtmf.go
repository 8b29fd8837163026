package audio

import (
	"sync/atomic"

	"github.com/arzzra/rtpaudio/pkg/rtpframe"
)

// dtmfRequest — одно запрошенное через SendDTMF событие, ожидающее
// подхвата потоком отправки. Длительность события не настраивается
// вызывающим кодом: она фиксирована правилом duration×5 ≥ sample-rate
// (см. dtmfRunner.step) и определяется только выбранной частотой
// дискретизации сессии.
type dtmfRequest struct {
	digit uint8
}

// dtmfSlot — однослотовая передача управления DTMF-цифрой между потоком
// управления (вызывающим SendDTMF) и потоком отправки, без блокировок на
// горячем пути: CAS с сентинелом nil как признаком "слот свободен".
type dtmfSlot struct {
	pending atomic.Pointer[dtmfRequest]
}

// offer пытается занять слот новым запросом. Возвращает false, если слот
// уже занят предыдущим, ещё не подхваченным событием — вызывающий код
// должен сообщить об этом как ErrorCodeDTMFBusy.
func (s *dtmfSlot) offer(req *dtmfRequest) bool {
	return s.pending.CompareAndSwap(nil, req)
}

// take забирает запрос из слота, если он есть, освобождая слот.
func (s *dtmfSlot) take() *dtmfRequest {
	req := s.pending.Load()
	if req == nil {
		return nil
	}
	if s.pending.CompareAndSwap(req, nil) {
		return req
	}
	return nil
}

// dtmfRunner проигрывает одно DTMF-событие в течение последовательных
// вызовов step, накапливая длительность в сэмплах по одному кадру за раз.
// Продолжительность события не настраивается: событие завершается, когда
// накопленная длительность duration удовлетворяет duration×5 ≥ sample-rate
// (≈200 мс), и ровно один раз отправляет завершающий пакет с установленным
// End.
type dtmfRunner struct {
	digit      uint8
	startTS    uint32
	duration   uint16
	sampleRate uint32
}

func newDTMFRunner(req *dtmfRequest, startTS uint32, sampleRate uint32) *dtmfRunner {
	return &dtmfRunner{
		digit:      req.digit,
		startTS:    startTS,
		sampleRate: sampleRate,
	}
}

// step накапливает frameSamples сэмплов и возвращает телефонный payload
// для очередного кадра, а также true, если событие этим кадром завершено
// (End=true уже установлен в возвращённом payload). Вызывающий код должен
// использовать startTS (не текущий timestamp потока) как RTP timestamp
// пакета для всех кадров события, включая завершающий, в соответствии с
// RFC 4733.
func (r *dtmfRunner) step(frameSamples uint32) (rtpframe.DTMFPayload, bool) {
	r.duration += uint16(frameSamples)
	done := uint32(r.duration)*5 >= r.sampleRate
	return rtpframe.DTMFPayload{
		Digit:    r.digit,
		End:      done,
		Duration: r.duration,
	}, done
}
