package handler

import "errors"

// Causes attached to rejected transactions. Match with errors.Is.
var (
	ErrUnauthorized     = errors.New("signer not authorized")
	ErrNotFound         = errors.New("entity not found")
	ErrAlreadyExists    = errors.New("entity already exists")
	ErrNotEmpty         = errors.New("entity still referenced")
	ErrNoPermission     = errors.New("namespace permission missing")
	ErrContractRejected = errors.New("contract rejected transaction")
)
