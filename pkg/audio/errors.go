package audio

import "fmt"

// ErrorCode классифицирует ошибки аудио-сессии по категории, чтобы
// вызывающий код мог обрабатывать их программно, а не сравнением строк.
type ErrorCode int

const (
	ErrorCodeInvalidConfig ErrorCode = iota + 2000
	ErrorCodeAlreadyPrepared
	ErrorCodeNotPrepared
	ErrorCodeAlreadySending
	ErrorCodeAlreadyReceiving
	ErrorCodeNotSending
	ErrorCodeNotReceiving
	ErrorCodeReleased

	ErrorCodeDeviceFailure
	ErrorCodeEncodeFailure
	ErrorCodeDecodeFailure

	ErrorCodeSocketFailure
	ErrorCodePortAllocationFailed

	ErrorCodeDTMFInvalidDigit
	ErrorCodeDTMFBusy
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidConfig:
		return "InvalidConfig"
	case ErrorCodeAlreadyPrepared:
		return "AlreadyPrepared"
	case ErrorCodeNotPrepared:
		return "NotPrepared"
	case ErrorCodeAlreadySending:
		return "AlreadySending"
	case ErrorCodeAlreadyReceiving:
		return "AlreadyReceiving"
	case ErrorCodeNotSending:
		return "NotSending"
	case ErrorCodeNotReceiving:
		return "NotReceiving"
	case ErrorCodeReleased:
		return "Released"
	case ErrorCodeDeviceFailure:
		return "DeviceFailure"
	case ErrorCodeEncodeFailure:
		return "EncodeFailure"
	case ErrorCodeDecodeFailure:
		return "DecodeFailure"
	case ErrorCodeSocketFailure:
		return "SocketFailure"
	case ErrorCodePortAllocationFailed:
		return "PortAllocationFailed"
	case ErrorCodeDTMFInvalidDigit:
		return "DTMFInvalidDigit"
	case ErrorCodeDTMFBusy:
		return "DTMFBusy"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Error — типизированная ошибка слоя аудио-сессии. Несёт код, человекочитаемое
// сообщение, идентификатор сессии для сопоставления с логами/метриками и,
// опционально, обёрнутую причинную ошибку.
type Error struct {
	Code      ErrorCode
	Message   string
	SessionID string
	Context   map[string]any
	Wrapped   error
}

func (e *Error) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("[audio:%s] session %s: %s", e.Code, e.SessionID, e.Message)
	}
	return fmt.Sprintf("[audio:%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// newError строит *Error с кодом и сообщением, без контекста.
func newError(code ErrorCode, sessionID, message string) *Error {
	return &Error{Code: code, SessionID: sessionID, Message: message}
}

// wrapError оборачивает err в *Error с кодом и сообщением.
func wrapError(code ErrorCode, sessionID, message string, err error) *Error {
	return &Error{Code: code, SessionID: sessionID, Message: message, Wrapped: err}
}
