package stack

// StackabilityKind classifies whether two stacks can combine.
type StackabilityKind int

const (
	// NotStackable indicates the stacks cannot combine at all.
	NotStackable StackabilityKind = iota
	// FullyStackable indicates both stacks combine into one.
	FullyStackable
	// PartiallyStackable indicates one full stack plus a remainder.
	PartiallyStackable
)

// String returns the kind name for logs and telemetry.
func (k StackabilityKind) String() string {
	switch k {
	case FullyStackable:
		return "fully_stackable"
	case PartiallyStackable:
		return "partially_stackable"
	default:
		return "not_stackable"
	}
}

// Stackability describes how two stacks combine under an item max. Combined
// is set for fully stackable pairs; Stacked and Remainder for partial ones.
type Stackability struct {
	Kind      StackabilityKind
	Combined  int
	Stacked   int
	Remainder int
}

// CanStack reports how two stacks of the given item types combine.
// Differing item IDs or an item configured non-stackable never combine.
func CanStack(s1, s2 Quantity, itemID1, itemID2 string, stackable bool, max int) (Stackability, error) {
	if err := CheckMax(max); err != nil {
		return Stackability{}, err
	}
	if itemID1 != itemID2 || !stackable {
		return Stackability{Kind: NotStackable}, nil
	}
	total := s1.Int() + s2.Int()
	if total <= max {
		return Stackability{Kind: FullyStackable, Combined: total}, nil
	}
	return Stackability{Kind: PartiallyStackable, Stacked: max, Remainder: total - max}, nil
}
