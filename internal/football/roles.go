package football

// Role is a named playing role, e.g. "GK", "CB", "ST".
type Role string

const (
	RoleGK  Role = "GK"
	RoleCB  Role = "CB"
	RoleLB  Role = "LB"
	RoleRB  Role = "RB"
	RoleCDM Role = "CDM"
	RoleCM  Role = "CM"
	RoleCAM Role = "CAM"
	RoleLM  Role = "LM"
	RoleRM  Role = "RM"
	RoleLW  Role = "LW"
	RoleRW  Role = "RW"
	RoleST  Role = "ST"
)

// Category groups roles into the four coarse positional bands.
type Category string

const (
	CategoryGoalkeeper Category = "goalkeeper"
	CategoryDefender   Category = "defender"
	CategoryMidfielder Category = "midfielder"
	CategoryForward    Category = "forward"
)

type roleInfo struct {
	category Category
	position Coordinate
}

// The default coordinates assume the team attacks towards x=100. The away
// side's positions get mirrored by the live engine.
var roleCatalog = map[Role]roleInfo{
	RoleGK:  {CategoryGoalkeeper, Coordinate{X: 5, Y: 50}},
	RoleCB:  {CategoryDefender, Coordinate{X: 20, Y: 50}},
	RoleLB:  {CategoryDefender, Coordinate{X: 22, Y: 15}},
	RoleRB:  {CategoryDefender, Coordinate{X: 22, Y: 85}},
	RoleCDM: {CategoryMidfielder, Coordinate{X: 38, Y: 50}},
	RoleCM:  {CategoryMidfielder, Coordinate{X: 50, Y: 50}},
	RoleCAM: {CategoryMidfielder, Coordinate{X: 62, Y: 50}},
	RoleLM:  {CategoryMidfielder, Coordinate{X: 50, Y: 18}},
	RoleRM:  {CategoryMidfielder, Coordinate{X: 50, Y: 82}},
	RoleLW:  {CategoryForward, Coordinate{X: 72, Y: 18}},
	RoleRW:  {CategoryForward, Coordinate{X: 72, Y: 82}},
	RoleST:  {CategoryForward, Coordinate{X: 82, Y: 50}},
}

// CategoryOf returns the positional band for a role. Unknown roles are
// treated as midfielders so a malformed lineup still simulates.
func CategoryOf(role Role) Category {
	if info, ok := roleCatalog[role]; ok {
		return info.category
	}
	return CategoryMidfielder
}

// DefaultPosition returns the role's anchor coordinate for a team
// attacking towards x=100.
func DefaultPosition(role Role) Coordinate {
	if info, ok := roleCatalog[role]; ok {
		return info.position
	}
	return Coordinate{X: 50, Y: 50}
}

// RolesInCategory lists every catalogued role in the given band.
func RolesInCategory(cat Category) []Role {
	var roles []Role
	for role, info := range roleCatalog {
		if info.category == cat {
			roles = append(roles, role)
		}
	}
	return roles
}

// CentralMidfieldRoles are the roles eligible to receive a build-up pass
// out of the defensive third.
var CentralMidfieldRoles = []Role{RoleCDM, RoleCM, RoleCAM}
