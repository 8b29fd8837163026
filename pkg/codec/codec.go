package codec

// Codec кодирует и декодирует один кадр голоса. Реализации не хранят
// состояние сэмпла между вызовами: каждый вызов Encode/Decode самодостаточен.
type Codec interface {
	// PayloadType возвращает статический RTP payload type кодека.
	PayloadType() uint8

	// Name возвращает имя кодека для логов и метрик ("PCMU", "PCMA").
	Name() string

	// Encode кодирует samples (16-битный PCM, один канал) в payload.
	// len(возврат) == len(samples).
	Encode(samples []int16) []byte

	// Decode декодирует payload в samples. len(samples) должен быть не
	// меньше len(payload); возвращает число записанных сэмплов.
	Decode(payload []byte, samples []int16) int
}

// Mulaw — кодек G.711 µ-law (PCMU, payload type 0).
type Mulaw struct{}

func (Mulaw) PayloadType() uint8 { return 0 }
func (Mulaw) Name() string       { return "PCMU" }

func (Mulaw) Encode(samples []int16) []byte {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = linearToUlaw(s)
	}
	return out
}

func (Mulaw) Decode(payload []byte, samples []int16) int {
	n := len(payload)
	for i := 0; i < n; i++ {
		samples[i] = ulawToLinear(payload[i])
	}
	return n
}

// Alaw — кодек G.711 A-law (PCMA, payload type 8).
type Alaw struct{}

func (Alaw) PayloadType() uint8 { return 8 }
func (Alaw) Name() string       { return "PCMA" }

func (Alaw) Encode(samples []int16) []byte {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = linearToAlaw(s)
	}
	return out
}

func (Alaw) Decode(payload []byte, samples []int16) int {
	n := len(payload)
	for i := 0; i < n; i++ {
		samples[i] = alawToLinear(payload[i])
	}
	return n
}

// ForPayloadType возвращает кодек для стандартного статического payload
// type, или nil если type не PCMU/PCMA.
func ForPayloadType(pt uint8) Codec {
	switch pt {
	case 0:
		return Mulaw{}
	case 8:
		return Alaw{}
	default:
		return nil
	}
}
