package audio

import (
	"context"
	"time"

	"github.com/arzzra/rtpaudio/pkg/jitter"
	"github.com/arzzra/rtpaudio/pkg/rtpframe"
)

// receiveLoop owns both halves of the receive side on a single thread: it
// fetches datagrams through the jitter buffer and drives playback. Each
// tick computes a deadline paced by ptime and, if the buffer is currently
// empty, blocks on the socket up to that deadline to receive directly into
// a buffer slot (zero-copy — no scratch buffer, no intermediate copy). Once
// at least one frame is available it is popped for this tick's playback,
// and any additional datagrams already queued at the socket are drained
// into the buffer without blocking, bounding buffered latency at the
// buffer's capacity and dropping the rest.
func (s *Session) receiveLoop(ctx context.Context, device PlaybackDevice, done chan struct{}) {
	defer close(done)

	frameSamples := s.cfg.samplesPerFrame()
	playSamples := make([]int16, frameSamples)

	var remoteSSRC uint32
	var remoteSSRCSet bool
	var lastTimestamp uint32
	var lastTimestampSet bool

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		deadline := time.Now().Add(s.cfg.Ptime)

		if s.jb.Len() == 0 {
			slot := s.jb.ObtainWriteSlot()
			if slot == nil {
				continue
			}
			n, err := s.socket.Receive(slot.Data[:], deadline)
			if err != nil {
				s.log.Debug("socket receive failed", "error", err)
				continue
			}
			if n <= 0 {
				continue
			}
			slot.Length = n
			s.jb.Commit()
		}

		frame := s.jb.Pop()
		if frame == nil {
			continue
		}

		s.drainSocket()

		payload, ok := s.acceptFrame(frame, &remoteSSRC, &remoteSSRCSet, &lastTimestamp, &lastTimestampSet)
		if !ok {
			continue
		}

		decoded := s.codec.Decode(payload, playSamples)
		if decoded <= 0 {
			continue
		}
		for i := decoded; i < len(playSamples); i++ {
			playSamples[i] = 0
		}

		if _, err := device.Write(playSamples); err != nil {
			s.log.Error("playback device failed, stopping receive loop", "error", err)
			return
		}
	}
}

// drainSocket empties any datagrams already queued at the socket into free
// jitter-buffer slots without blocking. Once the buffer is full, further
// datagrams for this tick are read into a discard sink and counted rather
// than left queued — the drain always runs to a non-blocking recv
// returning no data, so the receiver never falls behind the socket by more
// than one tick's backlog.
func (s *Session) drainSocket() {
	discards := 0
	for {
		slot := s.jb.ObtainWriteSlot()
		if slot == nil {
			n, err := s.socket.Receive(nil, time.Time{})
			if err != nil || n <= 0 {
				break
			}
			discards++
			s.jb.IncDiscarded()
			metrics.jitterDiscards.WithLabelValues(s.id).Inc()
			continue
		}
		n, err := s.socket.Receive(slot.Data[:], time.Time{})
		if err != nil || n <= 0 {
			break
		}
		slot.Length = n
		s.jb.Commit()
	}
	if discards > 0 {
		s.log.Debug("dropped packets during jitter buffer drain", "count", discards)
	}
}

// acceptFrame parses the raw datagram held by a popped jitter-buffer frame
// and applies the incoming-packet acceptance rules: validation happens
// here, at the point a packet leaves the buffer, not when it was enqueued,
// since the jitter buffer itself stores opaque bytes. DTMF telephony-event
// frames are reported immediately and never played out. An SSRC mismatch
// against the already-learned remote SSRC drops the packet outright — the
// learned SSRC is never overwritten by a later, differing one.
func (s *Session) acceptFrame(frame *jitter.Frame, remoteSSRC *uint32, remoteSSRCSet *bool, lastTimestamp *uint32, lastTimestampSet *bool) ([]byte, bool) {
	header, payload, err := rtpframe.Unmarshal(frame.Data[:frame.Length])
	if err != nil {
		s.log.Debug("dropping malformed packet", "error", err)
		metrics.packetsDropped.WithLabelValues(s.id).Inc()
		return nil, false
	}

	if header.PayloadType == dtmfPayloadType {
		if dtmf, ok := rtpframe.UnmarshalDTMF(payload); ok {
			metrics.dtmfEventsRecv.WithLabelValues(s.id).Inc()
			s.log.Debug("DTMF event received", "digit", dtmf.Digit, "end", dtmf.End)
		}
		return nil, false
	}

	if header.PayloadType != s.cfg.PayloadType {
		s.log.Debug("dropping packet with unexpected payload type", "payload_type", header.PayloadType)
		metrics.packetsDropped.WithLabelValues(s.id).Inc()
		return nil, false
	}

	if !*remoteSSRCSet {
		*remoteSSRC = header.SSRC
		*remoteSSRCSet = true
	} else if header.SSRC != *remoteSSRC {
		s.log.Debug("dropping packet with mismatched SSRC", "expected", *remoteSSRC, "got", header.SSRC)
		metrics.packetsDropped.WithLabelValues(s.id).Inc()
		return nil, false
	}

	if *lastTimestampSet && header.Timestamp < *lastTimestamp && *lastTimestamp-header.Timestamp < 1<<31 {
		s.log.Debug("dropping out-of-order packet", "seq", header.SequenceNumber)
		metrics.packetsDropped.WithLabelValues(s.id).Inc()
		return nil, false
	}
	*lastTimestamp = header.Timestamp
	*lastTimestampSet = true

	metrics.packetsReceived.WithLabelValues(s.id).Inc()
	return payload, true
}
