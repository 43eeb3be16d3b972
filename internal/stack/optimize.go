package stack

// Optimize repacks stacks into the fewest stacks possible under max: full
// stacks of max followed by at most one remainder stack. The total item
// count is preserved exactly.
func Optimize(stacks []Quantity, max int) ([]Quantity, error) {
	if err := CheckMax(max); err != nil {
		return nil, err
	}
	total := 0
	for _, s := range stacks {
		total += s.Int()
	}
	if total == 0 {
		return nil, nil
	}
	full := total / max
	remainder := total % max
	out := make([]Quantity, 0, full+1)
	for i := 0; i < full; i++ {
		out = append(out, Quantity(max))
	}
	if remainder > 0 {
		out = append(out, Quantity(remainder))
	}
	return out, nil
}

// Stats summarizes how efficiently a set of stacks packs under max.
type Stats struct {
	TotalStacks       int
	TotalItems        int
	AverageStackSize  float64
	MaxPossibleStacks int
	Efficiency        float64
}

// Summarize computes packing statistics for stacks under max. Efficiency is
// the ratio of the minimal stack count to the actual one; 1.0 means the set
// is already optimally packed.
func Summarize(stacks []Quantity, max int) (Stats, error) {
	if err := CheckMax(max); err != nil {
		return Stats{}, err
	}
	stats := Stats{TotalStacks: len(stacks)}
	for _, s := range stacks {
		stats.TotalItems += s.Int()
	}
	if stats.TotalStacks == 0 {
		return stats, nil
	}
	stats.AverageStackSize = float64(stats.TotalItems) / float64(stats.TotalStacks)
	stats.MaxPossibleStacks = (stats.TotalItems + max - 1) / max
	stats.Efficiency = float64(stats.MaxPossibleStacks) / float64(stats.TotalStacks)
	return stats, nil
}
