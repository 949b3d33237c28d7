package repositories

import "github.com/google/uuid"

// uuidArray renders ids for an "= ANY(?::uuid[])" predicate. squirrel.Eq would
// expand each uuid.UUID as a byte array, so batch lookups go through text instead.
func uuidArray(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
