package rtpframe

// DTMFPayload — разобранное событие телефонного события (RFC 4733-подобный
// формат). Бит раскладки третьего слова RTP-пакета: digit занимает старший
// байт (<<24), End — бит 1<<23, Reserved — бит 1<<22, Volume — биты 16-21,
// Duration — младшие 16 бит. Timestamp самого события переносится в поле
// Timestamp RTP-заголовка и должен оставаться одним и тем же значением во
// всех пакетах одного события, включая завершающий.
type DTMFPayload struct {
	Digit    uint8
	End      bool
	Volume   uint8
	Duration uint16
}

// MarshalDTMF сериализует событие в 4-байтовый payload телефонного события.
func MarshalDTMF(p DTMFPayload) []byte {
	buf := make([]byte, 4)
	buf[0] = p.Digit
	flags := p.Volume & 0x3F
	if p.End {
		flags |= 0x80
	}
	buf[1] = flags
	buf[2] = byte(p.Duration >> 8)
	buf[3] = byte(p.Duration)
	return buf
}

// UnmarshalDTMF разбирает 4-байтовый payload телефонного события.
func UnmarshalDTMF(payload []byte) (DTMFPayload, bool) {
	if len(payload) < 4 {
		return DTMFPayload{}, false
	}
	return DTMFPayload{
		Digit:    payload[0],
		End:      payload[1]&0x80 != 0,
		Volume:   payload[1] & 0x3F,
		Duration: uint16(payload[2])<<8 | uint16(payload[3]),
	}, true
}
