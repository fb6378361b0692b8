package engine

import (
	"fmt"
	"time"
)

// formatClock renders d as hh:mm:ss; hours are not wrapped at 24.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
