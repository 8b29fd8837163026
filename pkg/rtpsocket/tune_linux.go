//go:build linux

package rtpsocket

import (
	"net"

	"golang.org/x/sys/unix"
)

// tuneVoiceSocket применяет Linux-специфичные оптимизации для голосового
// трафика: приоритет сокета и активный опрос для снижения задержки.
func tuneVoiceSocket(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var setErr error
	err = raw.Control(func(fd uintptr) {
		// SO_PRIORITY=6 соответствует приоритету интерактивного аудио.
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_PRIORITY, 6); e != nil {
			setErr = e
			return
		}
		// SO_BUSY_POLL снижает задержку приёма за счёт активного опроса
		// (требует ядро 3.11+); отсутствие поддержки не критично.
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BUSY_POLL, 50)
	})
	if err != nil {
		return err
	}
	return setErr
}
