package container

// ItemCount sums the quantities of every slot holding itemID.
func (c Container) ItemCount(itemID string) int {
	total := 0
	for _, slot := range c.Slots {
		if slot != nil && slot.ItemID == itemID {
			total += slot.Count.Int()
		}
	}
	return total
}

// FindItemSlots returns the indices of slots holding itemID, in slot order.
func (c Container) FindItemSlots(itemID string) []int {
	var indices []int
	for i, slot := range c.Slots {
		if slot != nil && slot.ItemID == itemID {
			indices = append(indices, i)
		}
	}
	return indices
}

// IsEmpty reports whether every slot is empty.
func (c Container) IsEmpty() bool {
	for _, slot := range c.Slots {
		if slot != nil {
			return false
		}
	}
	return true
}

// IsFull reports whether every slot is occupied.
func (c Container) IsFull() bool {
	for _, slot := range c.Slots {
		if slot == nil {
			return false
		}
	}
	return true
}

// EmptySlotCount returns the number of empty slots.
func (c Container) EmptySlotCount() int {
	count := 0
	for _, slot := range c.Slots {
		if slot == nil {
			count++
		}
	}
	return count
}

// IsViewing reports whether playerID currently has the container open.
func (c Container) IsViewing(playerID string) bool {
	return c.isViewer(playerID)
}

func (c Container) isViewer(playerID string) bool {
	for _, v := range c.Viewers {
		if v == playerID {
			return true
		}
	}
	return false
}
