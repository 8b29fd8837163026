// Package codec реализует побитово точные кодеки G.711 (PCMU/PCMA),
// используемые для кодирования и декодирования голосовых кадров перед
// упаковкой в RTP payload.
//
// # Основные возможности
//
//   - Mulaw (PCMU, payload type 0): сегментный закон µ без инверсии бит.
//   - Alaw (PCMA, payload type 8): сегментный закон A с инверсией чётных
//     бит (маска 0x55) перед передачей по сети.
//
// # Архитектура
//
// Оба кодека реализуют интерфейс Codec: Encode преобразует срез 16-битных
// PCM-сэмплов в байты payload, Decode выполняет обратное преобразование.
// Кодеки не хранят состояние между вызовами — один и тот же Codec безопасно
// используется из нескольких горутин.
package codec
