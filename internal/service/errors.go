package service

import "errors"

var (
	ErrValidation         = errors.New("validation")                   // 400
	ErrConflict           = errors.New("conflict")                     // 400
	ErrInvalidCredentials = errors.New("invalid username or password") // 401
)
