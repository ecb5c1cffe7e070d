package service

import "errors"

// ValidationError представляет ошибку проверки пользовательского ввода. Такие
// ошибки показываются пользователю как есть и не означают сбой системы.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError создает ошибку валидации с готовым сообщением.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// IsValidationError сообщает, является ли ошибка ошибкой валидации.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
