package model

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	GroupID     GroupRef   `json:"groupId"`
	Order       int        `json:"order"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Completed reports whether the task has a completion timestamp.
func (t Task) Completed() bool { return t.CompletedAt != nil }

type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// GroupRef references the project a task belongs to. The zero value is the
// unassigned group.
type GroupRef struct {
	id string
}

// Group returns a reference to the project with the given id.
// A blank id yields the unassigned reference.
func Group(projectID string) GroupRef {
	return GroupRef{id: strings.TrimSpace(projectID)}
}

// Unassigned returns the "no project" reference.
func Unassigned() GroupRef { return GroupRef{} }

// ProjectID returns the referenced project id and whether one is set.
func (g GroupRef) ProjectID() (string, bool) {
	return g.id, g.id != ""
}

func (g GroupRef) IsUnassigned() bool { return g.id == "" }

// Is reports whether g references the given project id.
func (g GroupRef) Is(projectID string) bool {
	return g.id != "" && g.id == projectID
}

func (g GroupRef) Equal(o GroupRef) bool { return g.id == o.id }

func (g GroupRef) String() string {
	if g.id == "" {
		return "unassigned"
	}
	return g.id
}

// MarshalJSON encodes the reference as a project id string or null.
func (g GroupRef) MarshalJSON() ([]byte, error) {
	if g.id == "" {
		return []byte("null"), nil
	}
	return sonic.ConfigStd.Marshal(g.id)
}

var errGroupRefShape = errors.New("groupId must be a string or null")

// UnmarshalJSON accepts a JSON string or null. Anything else is an error;
// the store's load path coerces such values to unassigned before decoding.
func (g *GroupRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*g = GroupRef{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' {
		return errGroupRefShape
	}
	var s string
	if err := sonic.ConfigStd.Unmarshal(b, &s); err != nil {
		return errGroupRefShape
	}
	*g = Group(s)
	return nil
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter returns the filter named by s, or FilterAll when s is
// absent or unrecognized.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ValidStatusFilter reports whether s names a filter exactly.
func ValidStatusFilter(s string) bool {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}
