package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomDescription returns a unique description with the given prefix so
// parallel tests never collide on the same text.
func RandomDescription(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.NewString())
}
