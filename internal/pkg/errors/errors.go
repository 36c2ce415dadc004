package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись (студент или результат) не найдена.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется при неверном пароле студента или неверном пароле второго шанса.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных (пустое имя, пустой пароль).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния: повторная отправка теста
	// после скачивания PDF или попытка создать студента с уже занятым именем.
	ErrConflict = errors.New("resource state conflict")
)
