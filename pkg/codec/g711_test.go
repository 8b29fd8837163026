package codec

import "testing"

func TestMulawRoundTripMaxAmplitude(t *testing.T) {
	tests := []struct {
		name string
		pcm  int16
	}{
		{"max positive", 32767},
		{"max negative", -32768},
		{"zero", 0},
		{"small positive", 100},
		{"small negative", -100},
	}

	codec := Mulaw{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := codec.Encode([]int16{tt.pcm})
			if len(encoded) != 1 {
				t.Fatalf("expected 1 byte, got %d", len(encoded))
			}
			decoded := make([]int16, 1)
			n := codec.Decode(encoded, decoded)
			if n != 1 {
				t.Fatalf("expected 1 sample decoded, got %d", n)
			}
			// µ-law has a compression ratio; round trip should land within
			// the quantization step, not bit-exact to the original sample.
			diff := int(decoded[0]) - int(tt.pcm)
			if diff < -1024 || diff > 1024 {
				t.Errorf("round trip too far from original: pcm=%d got=%d", tt.pcm, decoded[0])
			}
		})
	}
}

func TestAlawEncodeKnownValue(t *testing.T) {
	// +32767 через A-law с нечётной инверсией должен дать 0xD5 согласно
	// описанию формата: положительная ветвь использует маску 0xD5.
	codec := Alaw{}
	got := codec.Encode([]int16{32767})[0]
	if got != 0xD5 {
		t.Errorf("A-law encode of max positive sample = 0x%02X, want 0xD5", got)
	}
}

func TestMulawDoesNotApply0x55Mask(t *testing.T) {
	// Кодирование нуля в µ-law не должно давать байт, характерный для
	// A-law инверсии (0xD5/0x55 семейство значений для тех же входов).
	mu := Mulaw{}.Encode([]int16{0})[0]
	al := Alaw{}.Encode([]int16{0})[0]
	if mu == al {
		t.Errorf("mu-law and A-law produced the same byte for zero input: 0x%02X", mu)
	}
}

func TestForPayloadType(t *testing.T) {
	if _, ok := ForPayloadType(0).(Mulaw); !ok {
		t.Errorf("payload type 0 should resolve to Mulaw")
	}
	if _, ok := ForPayloadType(8).(Alaw); !ok {
		t.Errorf("payload type 8 should resolve to Alaw")
	}
	if ForPayloadType(3) != nil {
		t.Errorf("unsupported payload type should resolve to nil")
	}
}

func TestDecodeLength(t *testing.T) {
	payload := []byte{0xFF, 0x7F, 0x00, 0x80}
	samples := make([]int16, len(payload))
	n := Mulaw{}.Decode(payload, samples)
	if n != len(payload) {
		t.Errorf("Decode returned %d, want %d", n, len(payload))
	}
}
