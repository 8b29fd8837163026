package rtpframe

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize — длина фиксированной части RTP-заголовка без CSRC-списка.
const HeaderSize = 12

// versionMask проверяет, что первые два бита первого слова заголовка
// кодируют версию 2 (RFC 3550 §5.1): неподходящая версия — верный признак
// того, что пришёл не RTP-пакет, а мусор на этом же порту.
const (
	versionMask  uint32 = 0xC0000000
	versionValue uint32 = 0x80000000
)

// Header описывает разобранный RTP-заголовок. SSRC хранится в том виде,
// в каком он был прочитан из сети — без разворота байт — и должен
// сравниваться только с другими значениями, прочитанными тем же кодом;
// сравнивать его с значением, полученным через encoding/binary.BigEndian,
// даст неверный результат.
type Header struct {
	Version        uint8
	Padding        bool
	Extension      bool
	Marker         bool
	PayloadType    uint8
	SequenceNumber uint16
	Timestamp      uint32
	SSRC           uint32
	CSRC           []uint32
}

// ssrcOrder — порядок байт, в котором это поле пишется и читается на
// проводе. Выбран LittleEndian, потому что целевая платформа — little-endian
// хосты; это именно тот "без сетевого разворота" эффект, который даёт
// memcpy нативного uint32 на такой платформе. Эквивалентный код на
// big-endian хосте дал бы другой порядок байт на проводе — это
// сознательное свойство формата, не баг переносимости.
var ssrcOrder = binary.LittleEndian

// Marshal сериализует заголовок и payload в один RTP-пакет.
func Marshal(h Header, payload []byte) []byte {
	buf := make([]byte, HeaderSize+4*len(h.CSRC)+len(payload))

	word0 := uint32(h.Version&0x3) << 30
	if h.Padding {
		word0 |= 1 << 29
	}
	if h.Extension {
		word0 |= 1 << 28
	}
	word0 |= uint32(len(h.CSRC)&0xF) << 24
	if h.Marker {
		word0 |= 1 << 23
	}
	word0 |= uint32(h.PayloadType&0x7F) << 16
	word0 |= uint32(h.SequenceNumber)

	binary.BigEndian.PutUint32(buf[0:4], word0)
	binary.BigEndian.PutUint32(buf[4:8], h.Timestamp)
	ssrcOrder.PutUint32(buf[8:12], h.SSRC)

	off := HeaderSize
	for _, csrc := range h.CSRC {
		binary.BigEndian.PutUint32(buf[off:off+4], csrc)
		off += 4
	}
	copy(buf[off:], payload)
	return buf
}

// Unmarshal разбирает пакет на заголовок и payload. Реализует шаги
// разбора: проверка версии/минимальной длины, пропуск CSRC-списка,
// пропуск profile-specific extension-блока (если флаг установлен),
// усечение padding-байт в конце пакета (если флаг установлен и последний
// байт пакета не превышает остаток полезной нагрузки).
func Unmarshal(packet []byte) (Header, []byte, error) {
	if len(packet) < HeaderSize {
		return Header{}, nil, fmt.Errorf("rtpframe: packet too short: %d bytes", len(packet))
	}

	word0 := binary.BigEndian.Uint32(packet[0:4])
	if word0&versionMask != versionValue {
		return Header{}, nil, fmt.Errorf("rtpframe: unsupported RTP version word 0x%08X", word0)
	}

	h := Header{
		Version:        uint8(word0 >> 30 & 0x3),
		Padding:        word0&(1<<29) != 0,
		Extension:      word0&(1<<28) != 0,
		Marker:         word0&(1<<23) != 0,
		PayloadType:    uint8(word0 >> 16 & 0x7F),
		SequenceNumber: uint16(word0 & 0xFFFF),
		Timestamp:      binary.BigEndian.Uint32(packet[4:8]),
		SSRC:           ssrcOrder.Uint32(packet[8:12]),
	}

	csrcCount := int(word0 >> 24 & 0xF)
	off := HeaderSize
	if len(packet) < off+4*csrcCount {
		return Header{}, nil, fmt.Errorf("rtpframe: packet truncated in CSRC list")
	}
	if csrcCount > 0 {
		h.CSRC = make([]uint32, csrcCount)
		for i := 0; i < csrcCount; i++ {
			h.CSRC[i] = binary.BigEndian.Uint32(packet[off : off+4])
			off += 4
		}
	}

	if h.Extension {
		if len(packet) < off+4 {
			return Header{}, nil, fmt.Errorf("rtpframe: packet truncated in extension header")
		}
		extLenWords := int(binary.BigEndian.Uint16(packet[off+2 : off+4]))
		off += 4 + 4*extLenWords
		if len(packet) < off {
			return Header{}, nil, fmt.Errorf("rtpframe: packet truncated by extension length")
		}
	}

	payload := packet[off:]
	if h.Padding {
		if len(payload) == 0 {
			return Header{}, nil, fmt.Errorf("rtpframe: padding bit set on empty payload")
		}
		padLen := int(payload[len(payload)-1])
		if padLen == 0 || padLen > len(payload) {
			return Header{}, nil, fmt.Errorf("rtpframe: invalid padding length %d", padLen)
		}
		payload = payload[:len(payload)-padLen]
	}

	return h, payload, nil
}
