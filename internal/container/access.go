package container

import "time"

// AccessFlag names one capability a player may hold on a container.
type AccessFlag int

const (
	// FlagView allows opening the container and reading its slots.
	FlagView AccessFlag = iota
	// FlagInsert allows placing stacks into slots.
	FlagInsert
	// FlagExtract allows removing stacks from slots.
	FlagExtract
	// FlagModify allows structural changes such as sorting.
	FlagModify
)

// String returns the flag name for logs and events.
func (f AccessFlag) String() string {
	switch f {
	case FlagInsert:
		return "insert"
	case FlagExtract:
		return "extract"
	case FlagModify:
		return "modify"
	default:
		return "view"
	}
}

// allows reports whether the permission entry grants the flag.
func (p Permission) allows(flag AccessFlag) bool {
	switch flag {
	case FlagView:
		return p.CanView
	case FlagInsert:
		return p.CanInsert
	case FlagExtract:
		return p.CanExtract
	case FlagModify:
		return p.CanModify
	}
	return false
}

// expired reports whether the entry has lapsed at the given time.
func (p Permission) expired(at time.Time) bool {
	return p.ExpiresAt != nil && !at.Before(*p.ExpiresAt)
}

// permissionFor returns the entry for playerID, if any.
func (c Container) permissionFor(playerID string) (Permission, bool) {
	for _, p := range c.Permissions {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Permission{}, false
}

// accessCheck decides whether playerID may perform the operation guarded by
// flag. The owner is always allowed; a non-expired permission entry is
// consulted next; public containers allow view and insert to everyone else.
func (c Container) accessCheck(playerID string, flag AccessFlag, at time.Time) error {
	if playerID == c.OwnerID {
		return nil
	}
	if perm, ok := c.permissionFor(playerID); ok {
		if perm.expired(at) {
			return ErrPermissionExpired
		}
		if perm.allows(flag) {
			return nil
		}
		return ErrAccessDenied
	}
	if c.AccessLevel == AccessPublic && (flag == FlagView || flag == FlagInsert) {
		return nil
	}
	return ErrAccessDenied
}

// machineLocked reports whether manual item operations are blocked for
// non-owners: redstone-driven machine containers only move items through
// their automation while redstone control is enabled.
func (c Container) machineLocked(playerID string) bool {
	if playerID == c.OwnerID {
		return false
	}
	if !c.Configuration.RedstoneControlled {
		return false
	}
	switch c.Type {
	case TypeHopper, TypeDispenser, TypeDropper:
		return true
	}
	return false
}
