// Package audio реализует одну двунаправленную голосовую RTP-сессию:
// захват → кодирование → темп отправки на одном потоке, приём с таймаутом →
// буфер сглаживания джиттера → декодирование → воспроизведение на другом,
// и управление жизненным циклом (configure/start/stop/release) на третьем.
//
// # Основные возможности
//
//   - Кодеки G.711 µ-law/A-law через pkg/codec.
//   - Парный чётный/нечётный UDP-порт и приём с абсолютным дедлайном через
//     pkg/rtpsocket.
//   - Буфер сглаживания джиттера фиксированной ёмкости через pkg/jitter.
//   - Построение и разбор RTP-заголовков без сетевого разворота SSRC через
//     pkg/rtpframe.
//   - Передача и приём одного DTMF-события за раз с передачей управления
//     цифрой между потоком захвата и потоком управления без блокировок.
//
// # Архитектура
//
// Session — единственная точка входа пакета. Её жизненный цикл гейтится
// конечным автоматом (idle → active → closed); NewSession валидирует
// Config и выделяет сокет, StartSending/StartReceiving запускают соответствующие
// потоки, Release переводит сессию в закрытое состояние и останавливает
// оба потока кооперативно — ни один пакет не прерывается на середине.
//
// # Быстрый старт
//
//	sess, err := audio.NewSession(audio.Config{
//		PayloadType: codec.Mulaw{}.PayloadType(),
//		SampleRate:  8000,
//		Ptime:       20 * time.Millisecond,
//		MicGainFactor: 1,
//	})
//	if err != nil {
//		return err
//	}
//	defer sess.Release()
//	if err := sess.StartSending(capture); err != nil {
//		return err
//	}
//	if err := sess.StartReceiving(playback); err != nil {
//		return err
//	}
package audio
