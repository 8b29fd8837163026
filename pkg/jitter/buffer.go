package jitter

import "sync/atomic"

const (
	// slotCount — число физических слотов кольца.
	slotCount = 6
	// maxPayload — максимальный размер кадра, который буфер готов принять
	// без выделения памяти на горячем пути (160 сэмплов * 2 байта на
	// 20ms/8kHz кадр — с запасом под более крупные ptime).
	maxPayload = 1024
)

// Frame — один слот кольца: метаданные пакета плюс статическое хранилище
// под его payload, переиспользуемое между оборотами кольца.
type Frame struct {
	SequenceNumber uint16
	Timestamp      uint32
	Marker         bool
	Data           [maxPayload]byte
	Length         int
}

// Buffer — кольцевой буфер сглаживания джиттера на одного потребителя.
// Безопасен для использования ровно одним производителем и ровно одним
// потребителем одновременно; не безопасен для нескольких производителей
// или нескольких потребителей без внешней синхронизации.
type Buffer struct {
	slots    [slotCount]Frame
	writeIdx uint32
	readIdx  uint32

	discarded atomic.Uint64 // счётчик кадров, отброшенных из-за переполнения
}

// New создаёт пустой буфер.
func New() *Buffer {
	return &Buffer{}
}

func next(i uint32) uint32 {
	i++
	if i == slotCount {
		return 0
	}
	return i
}

func prev(i uint32) uint32 {
	if i == 0 {
		return slotCount - 1
	}
	return i - 1
}

// ObtainWriteSlot возвращает указатель на следующий свободный слот для
// записи производителем, либо nil, если буфер полон. Буфер считается
// полным, когда продвижение хвоста на один слот столкнулось бы не с
// текущей головой, а со слотом перед ней (head-1) — т.е. реально
// используется не более 4 из 6 физических слотов. Второй зарезервированный
// слот держит голову, которую в данный момент может читать потребитель,
// отделённой от хвоста даже в момент, когда буфер выглядит полным.
func (b *Buffer) ObtainWriteSlot() *Frame {
	w := atomic.LoadUint32(&b.writeIdx)
	r := atomic.LoadUint32(&b.readIdx)
	if next(w) == prev(r) {
		return nil
	}
	return &b.slots[w]
}

// Commit подтверждает, что слот, возвращённый последним ObtainWriteSlot,
// заполнен и доступен потребителю для чтения.
func (b *Buffer) Commit() {
	w := atomic.LoadUint32(&b.writeIdx)
	atomic.StoreUint32(&b.writeIdx, next(w))
}

// Pop возвращает указатель на следующий готовый слот без копирования
// данных, либо nil, если буфер пуст. Указатель остаётся валидным как
// минимум до следующего вызова Pop: пока голова стоит сразу за этим
// слотом, он совпадает с head-1, и ObtainWriteSlot его не выдаёт.
func (b *Buffer) Pop() *Frame {
	r := atomic.LoadUint32(&b.readIdx)
	w := atomic.LoadUint32(&b.writeIdx)
	if r == w {
		return nil
	}
	f := &b.slots[r]
	atomic.StoreUint32(&b.readIdx, next(r))
	return f
}

// IncDiscarded увеличивает счётчик кадров, отброшенных из-за переполнения
// буфера (вызывается производителем, когда ObtainWriteSlot вернул nil).
func (b *Buffer) IncDiscarded() {
	b.discarded.Add(1)
}

// Discarded возвращает число кадров, отброшенных за время жизни буфера.
func (b *Buffer) Discarded() uint64 {
	return b.discarded.Load()
}

// Len возвращает число кадров, ожидающих чтения потребителем. Оценка, не
// гарантированно актуальная к моменту следующего Pop при конкурентном
// доступе — предназначена для метрик/диагностики, не для управления
// потоком.
func (b *Buffer) Len() int {
	w := atomic.LoadUint32(&b.writeIdx)
	r := atomic.LoadUint32(&b.readIdx)
	if w >= r {
		return int(w - r)
	}
	return int(slotCount - r + w)
}

// Capacity возвращает число полезных слотов буфера (slotCount-2, с учётом
// второго зарезервированного слота перед головой).
func Capacity() int {
	return slotCount - 2
}
