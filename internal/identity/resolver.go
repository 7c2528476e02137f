// Package identity normalizes record ownership and exposes the caller's
// authenticated identity to the sync layer.
package identity

// Resolve produces a consistent (driverID, userID) pair from a record's
// current ownership fields and an optional fallback (typically the
// authenticated user). Each side keeps its existing non-blank value, falls
// back to the other side, then to the fallback, then to empty.
//
// Resolve is pure and idempotent: Resolve(Resolve(x)) == Resolve(x), and it
// never leaves one side blank while the other is populated.
func Resolve(driverID, userID, fallback string) (string, string) {
	d := firstNonBlank(driverID, userID, fallback)
	u := firstNonBlank(userID, d, fallback)
	return d, u
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
