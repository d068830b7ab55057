package store

import (
	"strings"

	"github.com/google/uuid"
)

const (
	TaskIDPrefix    = "task"
	ProjectIDPrefix = "proj"
)

// NewID returns prefix-<suffix> where suffix is taken from a random UUID.
//
// Suffixes start short (6 hex chars) for readability and grow when exists
// reports a collision. exists may be nil.
func NewID(prefix string, exists func(string) bool) string {
	for _, ln := range []int{6, 8, 12} {
		for i := 0; i < 20; i++ {
			id := prefix + "-" + randomSuffix(ln)
			if exists == nil || !exists(id) {
				return id
			}
		}
	}
	// 32 hex chars of UUID; collisions are not a practical concern here.
	return prefix + "-" + randomSuffix(32)
}

func randomSuffix(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}
