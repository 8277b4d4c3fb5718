package geometry

// Connector roles carried by IndexedPosition.
const (
	// RoleAny is the wildcard: the point accepts or offers any fluid.
	RoleAny = ""
	// RoleAll marks a raw position that connects to anything.
	RoleAll = "all"

	RoleWater    = "water"
	RoleSteam    = "steam"
	RoleCrudeOil = "crude-oil"
)

// IndexedPosition is a connection point tagged with the fluid it carries.
type IndexedPosition struct {
	Position `yaml:",inline"`

	Role string `json:"role" yaml:"role"`
}

func Indexed(p Position, role string) IndexedPosition {
	return IndexedPosition{Position: p, Role: role}
}

// IsWildcard reports whether the role matches any counterpart.
func (ip IndexedPosition) IsWildcard() bool {
	return ip.Role == RoleAny || ip.Role == RoleAll
}

// TagAll tags every position with the same role.
func TagAll(points []Position, role string) []IndexedPosition {
	out := make([]IndexedPosition, len(points))
	for i, p := range points {
		out[i] = IndexedPosition{Position: p, Role: role}
	}
	return out
}
