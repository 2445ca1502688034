/* roles.go
 * Contains the ids of the roles created for a tournament, so they can be removed when the tournament ends
 */

package tournament

// RoleIDs holds the Discord role ids created for a running tournament
type RoleIDs struct {
	DirectorRoleID    uint64
	ReaderRoomRoleIDs map[uint64]uint64 // reader id -> room role id
	TeamRoleIDs       map[string]uint64 // team key -> team role id
}

// NewRoleIDs creates an empty RoleIDs
func NewRoleIDs() RoleIDs {
	return RoleIDs{
		ReaderRoomRoleIDs: make(map[uint64]uint64),
		TeamRoleIDs:       make(map[string]uint64),
	}
}

// All returns every role id, the director role first
func (r RoleIDs) All() []uint64 {
	ids := make([]uint64, 0, 1+len(r.ReaderRoomRoleIDs)+len(r.TeamRoleIDs))
	if r.DirectorRoleID != 0 {
		ids = append(ids, r.DirectorRoleID)
	}
	for _, id := range r.ReaderRoomRoleIDs {
		ids = append(ids, id)
	}
	for _, id := range r.TeamRoleIDs {
		ids = append(ids, id)
	}
	return ids
}
