package domain

import "errors"

var (
	// ErrInvalidMark — оценка вне диапазона [1,10].
	ErrInvalidMark = errors.New("mark must be between 1 and 10")

	// ErrConstraintViolation — хранилище отклонило запись: ссылка на несуществующий
	// жанр, режиссёра, MPA или пользователя, либо нарушена проверка.
	ErrConstraintViolation = errors.New("storage constraint violation")

	// ErrPosterStorageDisabled — файловое хранилище постеров не настроено.
	ErrPosterStorageDisabled = errors.New("poster storage is not configured")
)
