package stack

import "math"

// AddResult reports the outcome of adding items to a stack. When the sum
// fits under max, Size holds the new total and Overflow is zero. When it
// does not, Size is capped at max and Overflow holds the items that did
// not fit.
type AddResult struct {
	Size     Quantity
	Overflow int
}

// Overflowed reports whether the addition spilled past the item max.
func (r AddResult) Overflowed() bool { return r.Overflow > 0 }

// Add combines current with addition under max.
func Add(current Quantity, addition, max int) (AddResult, error) {
	if err := CheckMax(max); err != nil {
		return AddResult{}, err
	}
	if addition <= 0 {
		return AddResult{}, ErrInvalidOperation
	}
	if addition > max {
		return AddResult{}, ErrExceedsLimit
	}
	total := current.Int() + addition
	if total <= max {
		return AddResult{Size: Quantity(total)}, nil
	}
	return AddResult{Size: Quantity(max), Overflow: total - max}, nil
}

// RemoveResult reports the outcome of removing items from a stack. When
// more items are requested than the stack holds, Underflow is true and
// Size keeps the original quantity untouched.
type RemoveResult struct {
	Size      Quantity
	Underflow bool
	Requested int
}

// Remove takes removal items from current. A removal that drains the stack
// exactly leaves a single item in place; slot-level callers express "take
// everything" by replacing the slot instead.
func Remove(current Quantity, removal int) (RemoveResult, error) {
	if removal <= 0 {
		return RemoveResult{}, ErrInvalidOperation
	}
	if removal > current.Int() {
		return RemoveResult{Size: current, Underflow: true, Requested: removal}, nil
	}
	newSize := current.Int() - removal
	if newSize == 0 {
		newSize = 1
	}
	return RemoveResult{Size: Quantity(newSize), Requested: removal}, nil
}

// Split divides current into two parts by ratio. The first part receives
// floor(current*ratio); the remainder goes to the second. Ratios that leave
// either part empty fail with ErrInvalidRatio.
func Split(current Quantity, ratio float64) (Quantity, Quantity, error) {
	if ratio <= 0 || ratio >= 1 {
		return 0, 0, ErrInvalidRatio
	}
	first := int(math.Floor(float64(current.Int()) * ratio))
	second := current.Int() - first
	if first == 0 || second == 0 {
		return 0, 0, ErrInvalidRatio
	}
	return Quantity(first), Quantity(second), nil
}

// SplitInto divides current into parts stacks. Every part receives
// floor(current/parts); the remainder is distributed one item each to the
// last parts.
func SplitInto(current Quantity, parts int) ([]Quantity, error) {
	if parts < 1 || parts > current.Int() {
		return nil, ErrInvalidOperation
	}
	base := current.Int() / parts
	remainder := current.Int() % parts
	out := make([]Quantity, parts)
	for i := range out {
		size := base
		if i >= parts-remainder {
			size++
		}
		out[i] = Quantity(size)
	}
	return out, nil
}

// MergeAll left-folds stacks into the fewest stacks possible under max,
// carrying overflow forward: each full carry is emitted at max and the
// spill restarts the carry.
func MergeAll(stacks []Quantity, max int) ([]Quantity, error) {
	if err := CheckMax(max); err != nil {
		return nil, err
	}
	if len(stacks) == 0 {
		return nil, nil
	}
	var out []Quantity
	carry := stacks[0].Int()
	for _, next := range stacks[1:] {
		result, err := Add(Quantity(carry), next.Int(), max)
		if err != nil {
			return nil, err
		}
		if result.Overflowed() {
			out = append(out, result.Size)
			carry = result.Overflow
			continue
		}
		carry = result.Size.Int()
	}
	if carry > 0 {
		out = append(out, Quantity(carry))
	}
	return out, nil
}
