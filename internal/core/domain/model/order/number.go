package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewNumber generates a human-readable order number such as
// "ORD-20260310-5F2A1C". The date prefix keeps numbers roughly sortable; the
// random suffix avoids coordination between instances.
func NewNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
