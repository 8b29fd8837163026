package audio

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/arzzra/rtpaudio/pkg/codec"
	"github.com/arzzra/rtpaudio/pkg/jitter"
	"github.com/arzzra/rtpaudio/pkg/rtpsocket"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// Session — одна двунаправленная голосовая RTP-сессия: один UDP-сокет,
// один кодек, один буфер сглаживания джиттера, не более одного потока
// отправки и одного потока приёма одновременно.
type Session struct {
	id  string
	cfg Config

	codec  codec.Codec
	socket *rtpsocket.Socket
	jb     *jitter.Buffer
	log    *slog.Logger

	lifecycle *fsm.FSM
	mu        sync.RWMutex

	sending   bool
	receiving bool
	muted     bool

	ssrc          uint32
	sendSeq       uint16
	sendTimestamp uint32

	dtmf dtmfSlot

	sendCancel context.CancelFunc
	sendDone   chan struct{}
	recvCancel context.CancelFunc
	recvDone   chan struct{}
}

// NewSession валидирует cfg, выделяет парный UDP-порт и возвращает сессию
// в состоянии idle. Сессия готова к Associate/StartSending/StartReceiving.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, newError(ErrorCodeInvalidConfig, "", err.Error())
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EntropySource == nil {
		cfg.EntropySource = rand.Reader
	}

	socket, err := rtpsocket.Open(cfg.BindAddr, cfg.Logger)
	if err != nil {
		return nil, wrapError(ErrorCodePortAllocationFailed, "", "allocating RTP port pair", err)
	}

	id := uuid.NewString()
	s := &Session{
		id:     id,
		cfg:    cfg,
		codec:  codec.ForPayloadType(cfg.PayloadType),
		socket: socket,
		jb:     jitter.New(),
		log:    cfg.Logger.With("session_id", id),
	}

	s.ssrc, err = randomUint32(cfg.EntropySource)
	if err != nil {
		socket.Close()
		return nil, wrapError(ErrorCodeInvalidConfig, id, "seeding SSRC", err)
	}
	s.sendSeq, err = randomUint16(cfg.EntropySource)
	if err != nil {
		socket.Close()
		return nil, wrapError(ErrorCodeInvalidConfig, id, "seeding sequence number", err)
	}
	s.sendTimestamp, err = randomUint32(cfg.EntropySource)
	if err != nil {
		socket.Close()
		return nil, wrapError(ErrorCodeInvalidConfig, id, "seeding timestamp", err)
	}

	s.lifecycle = fsm.NewFSM(
		"idle",
		fsm.Events{
			{Name: "activate", Src: []string{"idle", "active"}, Dst: "active"},
			{Name: "quiesce", Src: []string{"active"}, Dst: "idle"},
			{Name: "release", Src: []string{"idle", "active"}, Dst: "closed"},
		},
		fsm.Callbacks{},
	)

	s.log.Debug("session created", "payload_type", cfg.PayloadType, "local_port", socket.LocalPort())
	return s, nil
}

// ID возвращает идентификатор сессии, используемый в логах и метриках.
func (s *Session) ID() string { return s.id }

// LocalPort возвращает чётный локальный RTP-порт, выделенный при создании.
func (s *Session) LocalPort() int { return s.socket.LocalPort() }

// Associate связывает сессию с удалённым RTP-адресом пира.
func (s *Session) Associate(remoteAddr string, remotePort int) error {
	addr, err := resolveUDPAddr(remoteAddr, remotePort)
	if err != nil {
		return wrapError(ErrorCodeSocketFailure, s.id, "resolving remote address", err)
	}
	if err := s.socket.Associate(addr); err != nil {
		return wrapError(ErrorCodeSocketFailure, s.id, "associating remote address", err)
	}
	return nil
}

// SetMuted включает или выключает подмену захваченного кадра цифровой
// тишиной перед кодированием. Темп и DTMF-тайминг потока отправки не
// нарушаются переключением mute.
func (s *Session) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

func (s *Session) isMuted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// StartSending запускает поток захвата/кодирования/отправки, читающий из
// device. Возвращает ошибку, если отправка уже запущена или сессия закрыта.
func (s *Session) StartSending(device CaptureDevice) error {
	s.mu.Lock()
	if s.lifecycle.Current() == "closed" {
		s.mu.Unlock()
		return newError(ErrorCodeReleased, s.id, "session released")
	}
	if s.sending {
		s.mu.Unlock()
		return newError(ErrorCodeAlreadySending, s.id, "sending already active")
	}
	if err := s.lifecycle.Event(context.Background(), "activate"); err != nil {
		s.mu.Unlock()
		return wrapError(ErrorCodeInvalidConfig, s.id, "lifecycle transition", err)
	}
	s.sending = true
	ctx, cancel := context.WithCancel(context.Background())
	s.sendCancel = cancel
	s.sendDone = make(chan struct{})
	s.mu.Unlock()

	go s.sendLoop(ctx, device, s.sendDone)
	return nil
}

// StopSending запрашивает кооперативную остановку потока отправки и
// блокируется до его завершения: текущий пакет всегда отправляется
// целиком, принудительного прерывания на середине пакета нет.
func (s *Session) StopSending() error {
	s.mu.Lock()
	if !s.sending {
		s.mu.Unlock()
		return newError(ErrorCodeNotSending, s.id, "sending not active")
	}
	cancel := s.sendCancel
	done := s.sendDone
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.sending = false
	s.quiesceIfIdle()
	s.mu.Unlock()
	return nil
}

// StartReceiving запускает поток приёма/буферизации/воспроизведения,
// пишущий в device.
func (s *Session) StartReceiving(device PlaybackDevice) error {
	s.mu.Lock()
	if s.lifecycle.Current() == "closed" {
		s.mu.Unlock()
		return newError(ErrorCodeReleased, s.id, "session released")
	}
	if s.receiving {
		s.mu.Unlock()
		return newError(ErrorCodeAlreadyReceiving, s.id, "receiving already active")
	}
	if err := s.lifecycle.Event(context.Background(), "activate"); err != nil {
		s.mu.Unlock()
		return wrapError(ErrorCodeInvalidConfig, s.id, "lifecycle transition", err)
	}
	s.receiving = true
	ctx, cancel := context.WithCancel(context.Background())
	s.recvCancel = cancel
	s.recvDone = make(chan struct{})
	s.mu.Unlock()

	go s.receiveLoop(ctx, device, s.recvDone)
	return nil
}

// StopReceiving запрашивает кооперативную остановку потока приёма.
func (s *Session) StopReceiving() error {
	s.mu.Lock()
	if !s.receiving {
		s.mu.Unlock()
		return newError(ErrorCodeNotReceiving, s.id, "receiving not active")
	}
	cancel := s.recvCancel
	done := s.recvDone
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.receiving = false
	s.quiesceIfIdle()
	s.mu.Unlock()
	return nil
}

// quiesceIfIdle переводит конечный автомат жизненного цикла обратно в idle,
// когда ни отправка, ни приём больше не активны. Вызывающий код должен
// держать s.mu.
func (s *Session) quiesceIfIdle() {
	if !s.sending && !s.receiving && s.lifecycle.Current() == "active" {
		_ = s.lifecycle.Event(context.Background(), "quiesce")
	}
}

// SendDTMF ставит в очередь одно DTMF-событие для отправки потоком
// отправки. Продолжительность события не настраивается вызывающим кодом —
// она фиксирована правилом duration×5 ≥ sample-rate (≈200 мс), см.
// dtmfRunner.step. Только одно событие может ожидать подхвата одновременно
// — повторный вызов до того, как предыдущее было подхвачено, вернёт
// ErrorCodeDTMFBusy.
func (s *Session) SendDTMF(digit uint8) error {
	if digit > 15 {
		return newError(ErrorCodeDTMFInvalidDigit, s.id, fmt.Sprintf("invalid DTMF digit %d", digit))
	}
	if !s.dtmf.offer(&dtmfRequest{digit: digit}) {
		return newError(ErrorCodeDTMFBusy, s.id, "a DTMF event is already pending")
	}
	return nil
}

// Release останавливает любые активные потоки, закрывает сокет и переводит
// сессию в состояние closed. Повторный вызов безопасен и ничего не делает.
func (s *Session) Release() error {
	s.mu.RLock()
	sending := s.sending
	receiving := s.receiving
	s.mu.RUnlock()

	if sending {
		if err := s.StopSending(); err != nil {
			s.log.Warn("stop sending during release failed", "error", err)
		}
	}
	if receiving {
		if err := s.StopReceiving(); err != nil {
			s.log.Warn("stop receiving during release failed", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lifecycle.Current() == "closed" {
		return nil
	}
	_ = s.lifecycle.Event(context.Background(), "release")
	return s.socket.Close()
}

func resolveUDPAddr(host string, port int) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
}

func randomUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func randomUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}
