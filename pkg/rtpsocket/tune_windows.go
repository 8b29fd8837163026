//go:build windows

package rtpsocket

import (
	"net"

	"golang.org/x/sys/windows"
)

const (
	voiceRecvBuffer = 64 * 1024
	voiceSendBuffer = 64 * 1024
)

// tuneVoiceSocket применяет Windows-специфичные оптимизации: увеличенные
// буферы приёма/отправки, чтобы короткие всплески джиттера сети не роняли
// дейтаграммы на уровне сокета до того, как их увидит буфер сглаживания.
func tuneVoiceSocket(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var setErr error
	err = raw.Control(func(fd uintptr) {
		if e := windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF, voiceRecvBuffer); e != nil {
			setErr = e
			return
		}
		setErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_SNDBUF, voiceSendBuffer)
	})
	if err != nil {
		return err
	}
	return setErr
}
