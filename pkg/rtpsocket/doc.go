// Package rtpsocket управляет парой UDP-портов (чётный RTP-порт и
// зарезервированный, но не открываемый, нечётный RTCP-порт), привязкой к
// удалённому адресу ("ассоциированием") и приёмом дейтаграмм с таймаутом,
// ограниченным абсолютным дедлайном, а не интервалом.
package rtpsocket
