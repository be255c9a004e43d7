package widget

import (
	"fmt"
	"strings"
)

// Role is the audience a lead signs up as.
type Role int

const (
	RoleBuyer Role = iota
	RoleAgent
)

// Roles lists every role in display order.
var Roles = []Role{RoleBuyer, RoleAgent}

func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleAgent:
		return "agent"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleAgent
}

// ParseRole maps "buyer" or "agent" (any case) to a Role.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "buyer":
		return RoleBuyer, nil
	case "agent":
		return RoleAgent, nil
	default:
		return RoleBuyer, fmt.Errorf("unknown role %q", value)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Choice is a two-way segmented control. Exactly one role is always selected
// and the zero value selects the buyer.
type Choice struct {
	Selected Role `json:"selected"`
}

// Select picks r. Unknown roles leave the choice untouched.
func (c Choice) Select(r Role) Choice {
	if !r.Valid() {
		return c
	}
	c.Selected = r
	return c
}
