// Package jitter реализует буфер сглаживания джиттера фиксированной
// ёмкости для одного приёмного RTP-потока: кольцо из 6 физических слотов,
// из которых в любой момент используется не более 4 — хвосту запрещено
// продвигаться на слот перед текущей головой (head-1), а не только на саму
// голову, так что одновременно зарезервированы два слота вместо одного.
// Это оставляет производителю меньше видимой ёмкости, чем физических
// слотов, но гарантирует, что слот, на который сейчас может указывать
// Pop, никогда не перезаписывается тем же тактом отправки, что его
// заполнил. Один производитель и один потребитель (в pkg/audio обе роли
// выполняет один и тот же цикл приёма) работают без блокировок на горячем пути:
// producer получает указатель на слот через ObtainWriteSlot, заполняет
// его на месте и подтверждает запись Commit; consumer получает указатель
// на следующий готовый слот через Pop без копирования данных.
package jitter
