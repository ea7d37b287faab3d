package organizer

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const provisionalPrefix = "local_"

// ID identifies a task or event. A provisional ID is generated on the
// device when an entity is created and replaced by the server-assigned
// canonical ID once the remote create is confirmed. Keeping the two
// kinds distinct in the type lets the sync logic branch on the kind
// instead of sniffing string prefixes.
type ID struct {
	value       string
	provisional bool
}

// NewProvisionalID generates a device-local placeholder ID. The string
// form carries a recognizable marker so it survives a round trip through
// storage.
func NewProvisionalID() ID {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the ID
		// unique enough via the timestamp if it somehow does.
		buf = []byte{0, 0, 0, 0}
	}
	return ID{
		value:       fmt.Sprintf("%s%d_%s", provisionalPrefix, time.Now().UnixMilli(), hex.EncodeToString(buf)),
		provisional: true,
	}
}

// CanonicalID wraps a server-assigned identifier.
func CanonicalID(s string) ID {
	return ID{value: s}
}

// ParseID reconstructs an ID from its string form, recognizing the
// provisional marker.
func ParseID(s string) ID {
	return ID{value: s, provisional: len(s) > len(provisionalPrefix) && s[:len(provisionalPrefix)] == provisionalPrefix}
}

// String returns the storable string form.
func (id ID) String() string { return id.value }

// IsProvisional reports whether the ID is a device-local placeholder.
func (id ID) IsProvisional() bool { return id.provisional }

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool { return id.value == "" }

// Equal reports whether two IDs refer to the same entity.
func (id ID) Equal(other ID) bool { return id.value == other.value }

// MarshalJSON encodes the ID as its plain string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON decodes a plain string, re-detecting the provisional
// marker.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseID(s)
	return nil
}
