package service

import "errors"

var (
	ErrNotFound           = errors.New("error not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInsufficientShares = errors.New("insufficient shares in open lots")
	ErrLocked             = errors.New("security is locked by another operation")
)
