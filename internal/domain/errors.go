package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrValidation   = errors.New("validation error")
	ErrAccessDenied = errors.New("access denied")
)

// NotFoundError ошибка отсутствия сущности с указанием её типа и идентификатора. Оборачивает ErrRecordNotFound,
// поэтому errors.Is(err, ErrRecordNotFound) продолжает работать.
type NotFoundError struct {
	Entity string
	ID     int64
}

func NewNotFoundError(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// ValidationError ошибка входных данных. Msg пригоден для показа клиенту.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
