package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type notVisibleError struct {
	id string
}

func (e notVisibleError) Error() string {
	return fmt.Sprintf("task %s is not visible in this view", e.id)
}

func errNotVisible(id string) error {
	return notVisibleError{id: id}
}
