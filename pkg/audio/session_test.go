package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapture struct {
	mu     sync.Mutex
	closed chan struct{}
}

func newFakeCapture() *fakeCapture {
	return &fakeCapture{closed: make(chan struct{})}
}

func (f *fakeCapture) Read(samples []int16) (int, error) {
	select {
	case <-f.closed:
		return 0, errClosed
	default:
	}
	for i := range samples {
		samples[i] = 0
	}
	time.Sleep(time.Millisecond)
	return len(samples), nil
}

func (f *fakeCapture) stop() {
	close(f.closed)
}

type fakePlayback struct {
	mu      sync.Mutex
	writes  int
	closed  chan struct{}
}

func newFakePlayback() *fakePlayback {
	return &fakePlayback{closed: make(chan struct{})}
}

func (f *fakePlayback) Write(samples []int16) (int, error) {
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
	return len(samples), nil
}

var errClosed = &Error{Code: ErrorCodeDeviceFailure, Message: "device closed"}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(Config{
		PayloadType:   0,
		SampleRate:    8000,
		Ptime:         5 * time.Millisecond,
		BindAddr:      "127.0.0.1",
		MicGainFactor: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Release() })
	return s
}

func TestNewSessionAllocatesEvenPort(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, 0, s.LocalPort()%2)
	assert.NotEmpty(t, s.ID())
}

func TestStartSendingTwiceFails(t *testing.T) {
	s := newTestSession(t)
	cap := newFakeCapture()
	defer cap.stop()

	require.NoError(t, s.StartSending(cap))
	err := s.StartSending(cap)
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Code: ErrorCodeAlreadySending})
}

func TestStopSendingWithoutStartFails(t *testing.T) {
	s := newTestSession(t)
	err := s.StopSending()
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Code: ErrorCodeNotSending})
}

func TestSendDTMFRejectsInvalidDigit(t *testing.T) {
	s := newTestSession(t)
	err := s.SendDTMF(16)
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Code: ErrorCodeDTMFInvalidDigit})
}

func TestSendDTMFRejectsSecondPendingEvent(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SendDTMF(5))
	err := s.SendDTMF(6)
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Code: ErrorCodeDTMFBusy})
}

func TestReleaseStopsActiveSending(t *testing.T) {
	s := newTestSession(t)
	cap := newFakeCapture()
	defer cap.stop()

	require.NoError(t, s.StartSending(cap))
	require.NoError(t, s.Release())

	// a second Release must be a no-op, not an error
	require.NoError(t, s.Release())
}

func TestStartReceivingDrivesPlayback(t *testing.T) {
	s := newTestSession(t)
	play := newFakePlayback()

	// The session sends to its own port, so the receive loop has RTP
	// packets to decode and play out.
	require.NoError(t, s.Associate("127.0.0.1", s.LocalPort()))
	capture := newFakeCapture()
	defer capture.stop()
	require.NoError(t, s.StartSending(capture))

	require.NoError(t, s.StartReceiving(play))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, s.StopReceiving())

	play.mu.Lock()
	writes := play.writes
	play.mu.Unlock()
	assert.Greater(t, writes, 0)
}
