package events

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types published by replace-style mutations. Replace operations
// are last-write-wins, so the audit trail is the only record of what a
// superseded write contained.
const (
	EventRolePermissionsReplaced = "rbac.role_permissions.replaced"
	EventUserAssignmentsReplaced = "rbac.user_assignments.replaced"
	EventProjectMembersReplaced  = "project.members.replaced"
	EventTeamMembersReplaced     = "team.members.replaced"
)

func NewRolePermissionsReplacedEvent(roleID int64, permissionIDs []int64, actorID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventRolePermissionsReplaced,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"role_id":        roleID,
			"permission_ids": permissionIDs,
			"actor_id":       actorID,
		},
	}
}

func NewUserAssignmentsReplacedEvent(userID int64, assignmentCount int, actorID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventUserAssignmentsReplaced,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":          userID,
			"assignment_count": assignmentCount,
			"actor_id":         actorID,
		},
	}
}

func NewProjectMembersReplacedEvent(projectID int64, userIDs []int64, actorID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventProjectMembersReplaced,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"project_id": projectID,
			"user_ids":   userIDs,
			"actor_id":   actorID,
		},
	}
}

func NewTeamMembersReplacedEvent(teamID int64, userIDs []int64, actorID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTeamMembersReplaced,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"team_id":  teamID,
			"user_ids": userIDs,
			"actor_id": actorID,
		},
	}
}
