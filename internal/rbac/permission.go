package rbac

import (
	"fmt"
	"sort"
	"strings"
)

// PermissionName is a validated capability name. Construction through
// NewPermissionName is the only way invalid names enter the system; guard
// checks afterwards are plain exact string comparisons.
type PermissionName string

// NewPermissionName rejects empty and whitespace-padded names. Matching is
// case-sensitive everywhere, so no normalization happens here.
func NewPermissionName(raw string) (PermissionName, error) {
	if raw == "" {
		return "", fmt.Errorf("permission name is required")
	}
	if strings.TrimSpace(raw) != raw {
		return "", fmt.Errorf("permission name must not contain leading or trailing whitespace: %q", raw)
	}
	return PermissionName(raw), nil
}

func (p PermissionName) String() string {
	return string(p)
}

// Action is the optional CRUD-style tag on a permission.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionRead    Action = "READ"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionManage  Action = "MANAGE"
	ActionApprove Action = "APPROVE"
)

var validActions = map[Action]struct{}{
	ActionCreate:  {},
	ActionRead:    {},
	ActionUpdate:  {},
	ActionDelete:  {},
	ActionManage:  {},
	ActionApprove: {},
}

// ParseAction validates an action tag. The empty string is allowed: the tag
// is optional on a permission.
func ParseAction(raw string) (Action, error) {
	if raw == "" {
		return "", nil
	}
	a := Action(raw)
	if _, ok := validActions[a]; !ok {
		return "", fmt.Errorf("unknown permission action: %q", raw)
	}
	return a, nil
}

// PermissionSet is a membership set over permission names.
type PermissionSet map[PermissionName]struct{}

// NewPermissionSet builds a set from names, deduplicating as it goes.
func NewPermissionSet(names ...PermissionName) PermissionSet {
	s := make(PermissionSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has is an exact, case-sensitive membership test.
func (s PermissionSet) Has(name PermissionName) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members sorted ascending for deterministic output.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}
