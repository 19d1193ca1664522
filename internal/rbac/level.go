package rbac

import "fmt"

// Level is the coarse privilege tag carried by a role. The ordering is
// nominal: it is used for display and sorting only, a higher level does not
// inherit a lower level's permissions.
type Level string

const (
	LevelUser       Level = "USER"
	LevelManager    Level = "MANAGER"
	LevelAdmin      Level = "ADMIN"
	LevelSuperAdmin Level = "SUPER_ADMIN"
)

var levelRank = map[Level]int{
	LevelUser:       1,
	LevelManager:    2,
	LevelAdmin:      3,
	LevelSuperAdmin: 4,
}

// ParseLevel validates a raw level string. Unknown values are rejected here
// so that a bad level can never silently fail a membership check later.
func ParseLevel(raw string) (Level, error) {
	l := Level(raw)
	if _, ok := levelRank[l]; !ok {
		return "", fmt.Errorf("unknown role level: %q", raw)
	}
	return l, nil
}

// IsValid reports whether l is one of the defined levels.
func (l Level) IsValid() bool {
	_, ok := levelRank[l]
	return ok
}

// Rank returns the nominal ordering position (USER lowest). Zero for an
// invalid level.
func (l Level) Rank() int {
	return levelRank[l]
}

func (l Level) String() string {
	return string(l)
}

// Levels returns all defined levels, lowest privilege first.
func Levels() []Level {
	return []Level{LevelUser, LevelManager, LevelAdmin, LevelSuperAdmin}
}
