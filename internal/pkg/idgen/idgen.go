package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Entity prefixes used for generated document ids.
const (
	PrefixJob          = "job"
	PrefixApplication  = "app"
	PrefixBrief        = "brief"
	PrefixProposal     = "prop"
	PrefixMatch        = "match"
	PrefixMessage      = "msg"
	PrefixNotification = "notif"
)

// New returns "<prefix>_<12 hex chars>" built from a random UUID.
func New(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "_" + hex[:12]
}

// HasPrefix reports whether id was generated for the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_") && len(id) == len(prefix)+13
}
