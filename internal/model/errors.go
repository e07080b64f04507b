package model

import "errors"

var (
	ErrInvalidMonthName = errors.New("invalid month name")
	ErrInvalidYear      = errors.New("invalid year")
	ErrDayOutOfRange    = errors.New("day out of range")
	ErrCorruptData      = errors.New("corrupt month log")
)
