package organizer

import "errors"

var (
	ErrBlankTitle = errors.New("task title is empty")
	ErrBlankName  = errors.New("project name is empty")
)
