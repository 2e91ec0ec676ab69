package ids

import "github.com/segmentio/ksuid"

// New returns a K-sortable unique id string.
func New() string {
	return ksuid.New().String()
}
