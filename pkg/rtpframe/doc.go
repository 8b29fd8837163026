// Package rtpframe строит и разбирает RTP-заголовки для голосового
// потока без использования стандартного RFC 3550 кодека из pion/rtp:
// поле SSRC хранится и передаётся без сетевого (big-endian) разворота байт,
// тогда как sequence number и timestamp разворачиваются как обычно. Это
// сознательное отступление от RFC 3550, совместимое с конкретным пиром,
// под которого написан этот модуль — не ошибка и не место для "починки".
package rtpframe
