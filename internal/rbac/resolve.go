package rbac

// RoleGrant is one role reached through a project role assignment, carrying
// the permissions attached to that role. The same role may appear once per
// assignment when a user holds it on several projects.
type RoleGrant struct {
	RoleID      int64
	RoleName    string
	Level       Level
	RoleActive  bool
	Permissions []GrantedPermission
}

// GrantedPermission is a permission as attached to a role.
type GrantedPermission struct {
	Name     PermissionName
	IsActive bool
}

// Resolve flattens the role grants from all of a user's assignments into the
// deduplicated union of permission names. Inactive roles and inactive
// permissions contribute nothing; zero grants yield the empty set, which the
// guard treats as deny-everything.
//
// The computation is pull-based and pure: callers re-run it on every fetch of
// the user aggregate instead of persisting the result.
func Resolve(grants []RoleGrant) PermissionSet {
	set := make(PermissionSet)
	for _, g := range grants {
		if !g.RoleActive {
			continue
		}
		for _, p := range g.Permissions {
			if !p.IsActive {
				continue
			}
			set[p.Name] = struct{}{}
		}
	}
	return set
}

// ResolveNames is Resolve with the sorted string form used on the wire as
// commonPermissions.
func ResolveNames(grants []RoleGrant) []string {
	return Resolve(grants).Names()
}
