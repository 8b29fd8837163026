//go:build darwin

package rtpsocket

import (
	"net"

	"golang.org/x/sys/unix"
)

// tuneVoiceSocket применяет macOS-специфичные оптимизации: SO_PRIORITY не
// поддерживается, поэтому используется SO_NOSIGPIPE для защиты от
// неожиданного SIGPIPE на долгоживущем сокете звонка.
func tuneVoiceSocket(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var setErr error
	err = raw.Control(func(fd uintptr) {
		setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
	})
	if err != nil {
		return err
	}
	return setErr
}
