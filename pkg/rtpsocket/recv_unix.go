//go:build linux || darwin

package rtpsocket

import (
	"net"

	"golang.org/x/sys/unix"
)

// platformReceive читает одну дейтаграмму через recvfrom с флагом
// MSG_TRUNC, что позволяет вернуть истинную длину дейтаграммы даже если
// она была больше переданного буфера — ровно тот контракт, который
// требуется от Receive при переполнении буфера приёма.
func platformReceive(conn *net.UDPConn, buf []byte) (int, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}

	var n int
	var recvErr error
	controlErr := raw.Read(func(fd uintptr) bool {
		n, _, recvErr = unix.Recvfrom(int(fd), buf, unix.MSG_TRUNC)
		if recvErr == unix.EAGAIN || recvErr == unix.EWOULDBLOCK {
			return false // ждём готовности сокета, SetReadDeadline применит таймаут
		}
		return true
	})
	if controlErr != nil {
		return 0, controlErr
	}
	if recvErr != nil {
		if recvErr == unix.EAGAIN || recvErr == unix.EWOULDBLOCK {
			return 0, timeoutError{}
		}
		return 0, recvErr
	}
	return n, nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "rtpsocket: receive timed out" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
