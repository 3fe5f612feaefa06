package sendutil

import "log/slog"

// SafeSend delivers v on ch without blocking and without panicking if ch has
// been closed. It reports whether the value was delivered.
func SafeSend[T any](ch chan T, v T) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("SafeSend recovered panic", "tag", "sendutil", "panic", r)
			sent = false
		}
	}()
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}
