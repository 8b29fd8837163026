package rtpsocket

import (
	"fmt"
	"log/slog"
	"net"
	"time"
)

const (
	minPort         = 1024
	maxPortAttempts = 1000
)

// Socket — один UDP-сокет, привязанный к чётному локальному порту, с
// соседним нечётным портом зарезервированным (но не открытым) под RTCP.
type Socket struct {
	conn       *net.UDPConn
	localPort  int
	remote     *net.UDPAddr
	associated bool
	log        *slog.Logger
}

// Open binds a UDP socket to bindAddr on an OS-assigned ephemeral port and
// inspects its parity. RTP convention reserves even ports for media and the
// adjacent odd port for RTCP: if the OS handed back an odd port, that
// socket is closed and rebinding is retried on a deterministic sequence of
// even candidates, starting at assigned+1 and advancing by a stride of
// 2*assigned each attempt — the doubled stride keeps every candidate even,
// and port arithmetic is done in 16 bits so the sequence wraps naturally
// instead of overflowing — for up to 1000 attempts, skipping any candidate
// below 1024.
func Open(bindAddr string, logger *slog.Logger) (*Socket, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP(bindAddr), Port: 0})
	if err != nil {
		return nil, fmt.Errorf("rtpsocket: binding ephemeral port: %w", err)
	}
	assigned := conn.LocalAddr().(*net.UDPAddr).Port

	if assigned%2 == 0 {
		return newSocket(conn, assigned, logger), nil
	}
	conn.Close()

	p := uint16(assigned)
	stride := 2 * p
	port := p + 1

	var lastErr error
	for attempt := 0; attempt < maxPortAttempts; attempt++ {
		if port >= minPort {
			addr := &net.UDPAddr{IP: net.ParseIP(bindAddr), Port: int(port)}
			retryConn, listenErr := net.ListenUDP("udp", addr)
			if listenErr == nil {
				logger.Debug("rtp socket bound on retry", "port", port, "assigned", assigned, "attempts", attempt+1)
				return newSocket(retryConn, int(port), logger), nil
			}
			lastErr = listenErr
		}
		port += stride
	}

	return nil, fmt.Errorf("rtpsocket: exhausted %d attempts to bind an even port after odd assignment %d: %w", maxPortAttempts, assigned, lastErr)
}

func newSocket(conn *net.UDPConn, port int, logger *slog.Logger) *Socket {
	s := &Socket{conn: conn, localPort: port, log: logger}
	if err := tuneVoiceSocket(conn); err != nil {
		logger.Debug("voice socket tuning skipped", "error", err)
	}
	return s
}

// LocalPort возвращает порт, на который привязан сокет (всегда чётный).
func (s *Socket) LocalPort() int {
	return s.localPort
}

// RTCPPort возвращает зарезервированный, но не открытый соседний порт.
func (s *Socket) RTCPPort() int {
	return s.localPort + 1
}

// Associate связывает сокет с удалённым адресом. Семейства адресов
// локального и удалённого конца должны совпадать: смешивать IPv4 и IPv6 в
// одной паре недопустимо.
func (s *Socket) Associate(remote *net.UDPAddr) error {
	local := s.conn.LocalAddr().(*net.UDPAddr)
	if (local.IP.To4() == nil) != (remote.IP.To4() == nil) {
		return fmt.Errorf("rtpsocket: address family mismatch between local %s and remote %s", local.IP, remote.IP)
	}
	s.remote = remote
	s.associated = true
	return nil
}

// Associated сообщает, был ли вызван Associate.
func (s *Socket) Associated() bool {
	return s.associated
}

// Send отправляет payload на ассоциированный удалённый адрес. Возвращает
// ошибку, если сокет ещё не ассоциирован.
func (s *Socket) Send(payload []byte) (int, error) {
	if !s.associated {
		return 0, fmt.Errorf("rtpsocket: socket not associated with a remote address")
	}
	return s.conn.WriteToUDP(payload, s.remote)
}

// Receive — контракт ограниченного по дедлайну приёма дейтаграммы:
//   - успех: возвращает истинную длину дейтаграммы (может быть больше
//     len(buf), если дейтаграмма была усечена буфером — платформенно
//     зависит от поддержки MSG_TRUNC, см. recv_*.go);
//   - дедлайн прошёл без данных: возвращает (0, nil);
//   - неустранимая ошибка сокета: возвращает (-1, err).
//
// Нулевой deadline (time.Time{}) означает "без дедлайна": вызов становится
// неблокирующим и немедленно возвращает (0, nil), если в сокете ничего не
// накоплено — используется циклом приёма для вычерпывания уже пришедших
// дейтаграмм без ожидания следующего тика.
func (s *Socket) Receive(buf []byte, deadline time.Time) (int, error) {
	if deadline.IsZero() {
		deadline = time.Now()
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return -1, err
	}
	n, err := platformReceive(s.conn, buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, nil
		}
		return -1, err
	}
	return n, nil
}

// Close закрывает сокет.
func (s *Socket) Close() error {
	return s.conn.Close()
}
