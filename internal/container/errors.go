package container

import apperrors "github.com/emberhollow/stockpile/internal/platform/errors"

var (
	// ErrAccessDenied indicates the player lacks the required permission.
	ErrAccessDenied = apperrors.New(apperrors.CodeContainerAccessDenied, "player is not allowed to perform this operation")
	// ErrSlotOccupied indicates a place into a non-empty slot.
	ErrSlotOccupied = apperrors.New(apperrors.CodeContainerSlotOccupied, "slot already holds a stack")
	// ErrSlotEmpty indicates a removal from an empty slot.
	ErrSlotEmpty = apperrors.New(apperrors.CodeContainerSlotEmpty, "slot is empty")
	// ErrInvalidSlotIndex indicates a slot index outside the slot array.
	ErrInvalidSlotIndex = apperrors.New(apperrors.CodeContainerInvalidSlotIndex, "slot index is out of range")
	// ErrContainerFull indicates no free slot accepts the item.
	ErrContainerFull = apperrors.New(apperrors.CodeContainerFull, "container has no free slot for the item")
	// ErrInvalidItemType indicates a slot filter that excludes the item.
	ErrInvalidItemType = apperrors.New(apperrors.CodeContainerInvalidItemType, "slot filter does not accept this item type")
	// ErrPermissionExpired indicates the player's grant has lapsed.
	ErrPermissionExpired = apperrors.New(apperrors.CodeContainerPermissionExpired, "player permission has expired")
	// ErrTooManyViewers indicates the viewer set is at its bound.
	ErrTooManyViewers = apperrors.New(apperrors.CodeContainerTooManyViewers, "container viewer limit reached")
	// ErrContainerLocked indicates a container whose lock blocks the operation.
	ErrContainerLocked = apperrors.New(apperrors.CodeContainerLocked, "container is locked")
	// ErrInvalidConfiguration indicates an operation the configuration forbids,
	// or inconsistent construction input.
	ErrInvalidConfiguration = apperrors.New(apperrors.CodeContainerInvalidConfig, "container configuration does not allow this")
	// ErrInvalidType indicates an unknown container type.
	ErrInvalidType = apperrors.New(apperrors.CodeContainerInvalidType, "container type is not recognized")
)
