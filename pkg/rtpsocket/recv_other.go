//go:build !linux && !darwin

package rtpsocket

import "net"

// platformReceive — запасной путь для платформ без MSG_TRUNC (Windows).
// Если дейтаграмма больше буфера, лишние байты теряются и возвращается
// len(buf), а не истинная длина дейтаграммы; в голосовом пути это не
// происходит, поскольку кадры фиксированного размера всегда укладываются
// в заранее выделенный буфер приёма.
func platformReceive(conn *net.UDPConn, buf []byte) (int, error) {
	n, _, err := conn.ReadFromUDP(buf)
	return n, err
}
