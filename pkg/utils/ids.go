package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns "<prefix>-<unix millis>-<8 hex>". The timestamp keeps ids
// roughly sortable; the random suffix separates ids minted in the same millisecond.
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
