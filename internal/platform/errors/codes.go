// Package errors provides structured error handling with stable reason codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Stack quantity errors
	CodeStackInvalidSize      Code = "STACK_INVALID_SIZE"
	CodeStackInvalidMaxSize   Code = "STACK_INVALID_MAX_SIZE"
	CodeStackExceedsLimit     Code = "STACK_EXCEEDS_LIMIT"
	CodeStackInvalidOperation Code = "STACK_INVALID_OPERATION"
	CodeStackInvalidRatio     Code = "STACK_INVALID_RATIO"

	// Item stack errors
	CodeItemEmptyItemID          Code = "ITEM_EMPTY_ITEM_ID"
	CodeItemIncompatible         Code = "ITEM_INCOMPATIBLE"
	CodeItemNbtMismatch          Code = "ITEM_NBT_MISMATCH"
	CodeItemStackLimitExceeded   Code = "ITEM_STACK_LIMIT_EXCEEDED"
	CodeItemSplitUnderflow       Code = "ITEM_SPLIT_UNDERFLOW"
	CodeItemInvalidStackSize     Code = "ITEM_INVALID_STACK_SIZE"
	CodeItemInvalidDurability    Code = "ITEM_INVALID_DURABILITY"
	CodeItemInsufficientQuantity Code = "ITEM_INSUFFICIENT_QUANTITY"

	// Container errors
	CodeContainerAccessDenied     Code = "CONTAINER_ACCESS_DENIED"
	CodeContainerSlotOccupied     Code = "CONTAINER_SLOT_OCCUPIED"
	CodeContainerSlotEmpty        Code = "CONTAINER_SLOT_EMPTY"
	CodeContainerInvalidSlotIndex Code = "CONTAINER_INVALID_SLOT_INDEX"
	CodeContainerFull             Code = "CONTAINER_FULL"
	CodeContainerInvalidItemType  Code = "CONTAINER_INVALID_ITEM_TYPE"
	CodeContainerPermissionExpired Code = "CONTAINER_PERMISSION_EXPIRED"
	CodeContainerTooManyViewers   Code = "CONTAINER_TOO_MANY_VIEWERS"
	CodeContainerLocked           Code = "CONTAINER_LOCKED"
	CodeContainerInvalidConfig    Code = "CONTAINER_INVALID_CONFIGURATION"
	CodeContainerInvalidType      Code = "CONTAINER_INVALID_TYPE"

	// Catalog errors
	CodeCatalogUnknownItem        Code = "CATALOG_UNKNOWN_ITEM"
	CodeCatalogDuplicateItem      Code = "CATALOG_DUPLICATE_ITEM"
	CodeCatalogInvalidDefinition  Code = "CATALOG_INVALID_DEFINITION"

	// Storage errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeVersionConflict Code = "VERSION_CONFLICT"
)
