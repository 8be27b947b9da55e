package quiz

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint returns a deterministic digest of the canonical task id set.
// It is order-independent, so reordering tasks does not invalidate a saved
// session, but adding, removing, or regenerating questions does.
func Fingerprint(tasks []Task) string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}
