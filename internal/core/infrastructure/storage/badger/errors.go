package badger

import "errors"

var (
	ErrStoreClosed = errors.New("badger store closed")
	ErrTxnClosed   = errors.New("badger transaction closed")
)
