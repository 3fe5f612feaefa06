package gameerrors

import "errors"

// Sentinel errors shared by the session, console and game packages.
// Kept in their own package so none of them has to import another for errors.
var (
	ErrSessionClosed         = errors.New("session closed")
	ErrUnknownCharacteristic = errors.New("unknown characteristic")
	ErrUnknownCommand        = errors.New("unknown command")
	ErrUnknownLabel          = errors.New("no card with that label")
)
