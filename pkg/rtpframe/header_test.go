package rtpframe

import (
	"bytes"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	h := Header{
		Version:        2,
		PayloadType:    0,
		SequenceNumber: 4242,
		Timestamp:      160000,
		SSRC:           0xDEADBEEF,
		Marker:         true,
	}
	payload := []byte{1, 2, 3, 4, 5}

	packet := Marshal(h, payload)
	if len(packet) != HeaderSize+len(payload) {
		t.Fatalf("unexpected packet length %d", len(packet))
	}

	got, gotPayload, err := Unmarshal(packet)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.SequenceNumber != h.SequenceNumber || got.Timestamp != h.Timestamp || got.SSRC != h.SSRC || got.Marker != h.Marker {
		t.Errorf("header mismatch: got %+v, want %+v", got, h)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Errorf("payload mismatch: got %v, want %v", gotPayload, payload)
	}
}

func TestSSRCIsNotByteSwapped(t *testing.T) {
	h := Header{Version: 2, SSRC: 0x01020304}
	packet := Marshal(h, nil)
	// SSRC должен лежать в little-endian порядке на проводе, а не в
	// сетевом (big-endian), в отличие от sequence number/timestamp.
	wireSSRC := packet[8:12]
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(wireSSRC, want) {
		t.Errorf("SSRC wire bytes = %v, want %v (no network swap)", wireSSRC, want)
	}
}

func TestUnmarshalRejectsBadVersion(t *testing.T) {
	packet := make([]byte, HeaderSize)
	packet[0] = 0x00 // version 0
	_, _, err := Unmarshal(packet)
	if err == nil {
		t.Errorf("expected error for invalid RTP version")
	}
}

func TestUnmarshalTooShort(t *testing.T) {
	_, _, err := Unmarshal(make([]byte, 4))
	if err == nil {
		t.Errorf("expected error for too-short packet")
	}
}

func TestUnmarshalWithCSRCAndPadding(t *testing.T) {
	h := Header{
		Version: 2,
		Padding: true,
		CSRC:    []uint32{0x11111111, 0x22222222},
	}
	payload := []byte{0xAA, 0xBB, 0x02} // last byte = padding length 2
	packet := Marshal(h, payload)

	got, gotPayload, err := Unmarshal(packet)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.CSRC) != 2 || got.CSRC[0] != 0x11111111 {
		t.Errorf("CSRC list mismatch: %v", got.CSRC)
	}
	if !bytes.Equal(gotPayload, []byte{0xAA}) {
		t.Errorf("padding not stripped correctly: %v", gotPayload)
	}
}

func TestDTMFMarshalUnmarshalRoundTrip(t *testing.T) {
	p := DTMFPayload{Digit: 5, End: true, Volume: 10, Duration: 800}
	got, ok := UnmarshalDTMF(MarshalDTMF(p))
	if !ok {
		t.Fatalf("UnmarshalDTMF returned false")
	}
	if got != p {
		t.Errorf("DTMF round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestDTMFDigitFiveByteLayout(t *testing.T) {
	buf := MarshalDTMF(DTMFPayload{Digit: 5})
	if buf[0] != 0x05 {
		t.Errorf("digit byte = 0x%02X, want 0x05", buf[0])
	}
}
