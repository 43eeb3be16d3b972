package event

import "time"

// ContainerOpenedPayload captures the payload for container.opened events.
type ContainerOpenedPayload struct {
	PlayerID      string `json:"player_id"`
	ContainerType string `json:"container_type"`
	PositionX     int    `json:"position_x"`
	PositionY     int    `json:"position_y"`
	PositionZ     int    `json:"position_z"`
}

// ContainerClosedPayload captures the payload for container.closed events.
type ContainerClosedPayload struct {
	PlayerID        string        `json:"player_id"`
	SessionDuration time.Duration `json:"session_duration"`
}

// ItemPlacedPayload captures the payload for container.item_placed events.
type ItemPlacedPayload struct {
	PlayerID    string `json:"player_id"`
	SlotIndex   int    `json:"slot_index"`
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity"`
	ItemStackID string `json:"item_stack_id"`
}

// ItemRemovedPayload captures the payload for container.item_removed events.
type ItemRemovedPayload struct {
	PlayerID    string `json:"player_id"`
	SlotIndex   int    `json:"slot_index"`
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity"`
	ItemStackID string `json:"item_stack_id"`
	Reason      string `json:"reason,omitempty"`
}

// ContainerSortedPayload captures the payload for container.sorted events.
type ContainerSortedPayload struct {
	PlayerID      string `json:"player_id"`
	SortType      string `json:"sort_type"`
	AffectedSlots int    `json:"affected_slots"`
}

// PermissionGrantedPayload captures the payload for container.permission_granted events.
type PermissionGrantedPayload struct {
	GrantedBy  string     `json:"granted_by"`
	PlayerID   string     `json:"player_id"`
	CanView    bool       `json:"can_view"`
	CanInsert  bool       `json:"can_insert"`
	CanExtract bool       `json:"can_extract"`
	CanModify  bool       `json:"can_modify"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// StackMergedPayload captures the payload for stack.merged events.
type StackMergedPayload struct {
	SourceStackID  string `json:"source_stack_id"`
	TargetStackID  string `json:"target_stack_id"`
	ItemID         string `json:"item_id"`
	MergedQuantity int    `json:"merged_quantity"`
	FinalQuantity  int    `json:"final_quantity"`
}

// StackSplitPayload captures the payload for stack.split events.
type StackSplitPayload struct {
	SourceStackID     string `json:"source_stack_id"`
	NewStackID        string `json:"new_stack_id"`
	ItemID            string `json:"item_id"`
	SplitQuantity     int    `json:"split_quantity"`
	RemainingQuantity int    `json:"remaining_quantity"`
}

// StackConsumedPayload captures the payload for stack.consumed events.
type StackConsumedPayload struct {
	StackID           string `json:"stack_id"`
	ItemID            string `json:"item_id"`
	ConsumedQuantity  int    `json:"consumed_quantity"`
	RemainingQuantity int    `json:"remaining_quantity"`
	Reason            string `json:"reason,omitempty"`
}

// StackDamagedPayload captures the payload for stack.damaged events.
type StackDamagedPayload struct {
	StackID       string  `json:"stack_id"`
	ItemID        string  `json:"item_id"`
	DamageAmount  float64 `json:"damage_amount"`
	NewDurability float64 `json:"new_durability"`
	Broken        bool    `json:"broken"`
}
