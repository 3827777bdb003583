package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPhoneRegistered  = errors.New("user with this phone already exists")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrModuleNotFound   = errors.New("module not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrWordNotFound     = errors.New("word not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAINoChoices      = errors.New("AI returned no choices")
)
