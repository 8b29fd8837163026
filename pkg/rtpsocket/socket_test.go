package rtpsocket

import (
	"net"
	"testing"
	"time"
)

func TestOpenBindsEvenPort(t *testing.T) {
	s, err := Open("127.0.0.1", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.LocalPort()%2 != 0 {
		t.Errorf("LocalPort() = %d, want an even port", s.LocalPort())
	}
	if s.RTCPPort() != s.LocalPort()+1 {
		t.Errorf("RTCPPort() = %d, want %d", s.RTCPPort(), s.LocalPort()+1)
	}
}

func TestSendWithoutAssociateFails(t *testing.T) {
	s, err := Open("127.0.0.1", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.Send([]byte("hello")); err == nil {
		t.Errorf("expected Send to fail before Associate")
	}
}

func TestSendReceiveRoundTrip(t *testing.T) {
	a, err := Open("127.0.0.1", nil)
	if err != nil {
		t.Fatalf("Open a: %v", err)
	}
	defer a.Close()

	b, err := Open("127.0.0.1", nil)
	if err != nil {
		t.Fatalf("Open b: %v", err)
	}
	defer b.Close()

	remoteForA := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: b.LocalPort()}
	remoteForB := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: a.LocalPort()}

	if err := a.Associate(remoteForA); err != nil {
		t.Fatalf("Associate a: %v", err)
	}
	if err := b.Associate(remoteForB); err != nil {
		t.Fatalf("Associate b: %v", err)
	}

	if _, err := a.Send([]byte("ping")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	buf := make([]byte, 64)
	n, err := b.Receive(buf, time.Now().Add(2*time.Second))
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if n <= 0 {
		t.Fatalf("Receive returned n=%d, want > 0", n)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("Receive returned data=%q, want %q", buf[:n], "ping")
	}
}

func TestReceiveTimesOutWithZero(t *testing.T) {
	s, err := Open("127.0.0.1", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	buf := make([]byte, 64)
	n, err := s.Receive(buf, time.Now().Add(50*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error on timeout: %v", err)
	}
	if n != 0 {
		t.Errorf("Receive on timeout = %d, want 0", n)
	}
}
