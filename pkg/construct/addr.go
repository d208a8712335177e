package construct

import (
	"strings"

	"github.com/google/uuid"
)

// Addr returns a short, stable address for a construct path. The same path always produces the same address,
// which makes it usable as a suffix for generated child names (associations, security groups, shares).
func Addr(path ...string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(path, "/")))
	return strings.ReplaceAll(u.String(), "-", "")[:12]
}
