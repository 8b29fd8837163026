package audio

import "testing"

func TestDtmfSlotOfferAndTake(t *testing.T) {
	var slot dtmfSlot

	req := &dtmfRequest{digit: 7}
	if !slot.offer(req) {
		t.Fatalf("expected first offer to succeed on an empty slot")
	}
	if slot.offer(&dtmfRequest{digit: 8}) {
		t.Fatalf("expected second offer to fail while slot is occupied")
	}

	got := slot.take()
	if got == nil || got.digit != 7 {
		t.Fatalf("take() returned %+v, want digit 7", got)
	}
	if slot.take() != nil {
		t.Fatalf("expected slot to be empty after take")
	}
}

// TestDtmfRunnerEndsAfterFixedDuration mirrors the end-to-end scenario of
// sample-rate 8000, frame size 160: the event is expected to run for
// exactly 10 frames (1600 samples) before duration×5 ≥ sample-rate trips.
func TestDtmfRunnerEndsAfterFixedDuration(t *testing.T) {
	req := &dtmfRequest{digit: 5}
	r := newDTMFRunner(req, 16000, 8000)

	const frameSamples = 160
	const expectedFrames = 10

	for i := 1; i < expectedFrames; i++ {
		p, done := r.step(frameSamples)
		if done {
			t.Fatalf("event ended too early, after frame %d", i)
		}
		if p.End {
			t.Fatalf("End flag set too early, on frame %d", i)
		}
		if p.Duration != uint16(i*frameSamples) {
			t.Errorf("frame %d: duration = %d, want %d", i, p.Duration, i*frameSamples)
		}
	}

	final, done := r.step(frameSamples)
	if !done {
		t.Fatalf("event should be done after %d frames (1600 samples)", expectedFrames)
	}
	if !final.End {
		t.Fatalf("End flag should be set on the final frame")
	}
	if final.Digit != 5 {
		t.Errorf("digit = %d, want 5", final.Digit)
	}
	if final.Duration != 1600 {
		t.Errorf("final duration = %d, want 1600", final.Duration)
	}
}

func TestDtmfRunnerKeepsStartTimestamp(t *testing.T) {
	req := &dtmfRequest{digit: 9}
	r := newDTMFRunner(req, 99999, 8000)
	if r.startTS != 99999 {
		t.Errorf("startTS = %d, want 99999", r.startTS)
	}
	r.step(160)
	if r.startTS != 99999 {
		t.Errorf("startTS changed after step: %d", r.startTS)
	}
}
