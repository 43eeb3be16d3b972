package item

// Enchantment is one enchantment applied to a stack.
type Enchantment struct {
	ID    string
	Level int
}

// Metadata holds the optional NBT-style data attached to a stack. A nil
// *Metadata means the stack carries no custom data at all.
type Metadata struct {
	Enchantments    []Enchantment
	CustomName      string
	Lore            []string
	Unbreakable     bool
	CustomModelData int
	Tags            []string
}

// CompatibleWith reports whether two metadata values allow their stacks to
// merge. Two absent metadata values are compatible; an absent value never
// matches a present one. Enchantments are compared by count, not by
// identity or level.
func (m *Metadata) CompatibleWith(other *Metadata) bool {
	if m == nil && other == nil {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if len(m.Enchantments) != len(other.Enchantments) {
		return false
	}
	if m.CustomName != other.CustomName {
		return false
	}
	if m.Unbreakable != other.Unbreakable {
		return false
	}
	if m.CustomModelData != other.CustomModelData {
		return false
	}
	return true
}

// Clone returns a deep copy so split stacks never share slices.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	clone := &Metadata{
		CustomName:      m.CustomName,
		Unbreakable:     m.Unbreakable,
		CustomModelData: m.CustomModelData,
	}
	if len(m.Enchantments) > 0 {
		clone.Enchantments = append([]Enchantment(nil), m.Enchantments...)
	}
	if len(m.Lore) > 0 {
		clone.Lore = append([]string(nil), m.Lore...)
	}
	if len(m.Tags) > 0 {
		clone.Tags = append([]string(nil), m.Tags...)
	}
	return clone
}
