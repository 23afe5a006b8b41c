package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// documentPrefix builds the month-scoped document number prefix,
// e.g. ("INV", March 2026) -> "INV-202603".
func documentPrefix(kind string, at time.Time) string {
	return fmt.Sprintf("%s-%s", kind, at.Format("200601"))
}

// nextDocumentNumber derives the next sequential document number from the
// latest number issued under the same prefix. Numbers look like
// INV-202603-000042; the sequence restarts at 1 each month. A latest value
// that does not parse falls back to sequence 1 rather than failing the
// document create.
func nextDocumentNumber(prefix, latest string) string {
	seq := 1
	if latest != "" {
		parts := strings.Split(latest, "-")
		if len(parts) == 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
