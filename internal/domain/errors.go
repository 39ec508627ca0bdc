package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSeatAlreadyTaken  = errors.New("seat(s) are already taken for this showtime")
	ErrShowtimeOverlap   = errors.New("hall already hosts a showtime in this time window")
	ErrUnknownStatus     = errors.New("unknown status value in storage")
	ErrUnknownRole       = errors.New("unknown role")
)
