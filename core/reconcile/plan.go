package reconcile

// Rows emits one row per registered group, in group order.
// Blank groups are skipped.
func (p *MergePlan) Rows() [][]string {
	rows := make([][]string, 0, len(p.Groups))
	for _, g := range p.Groups {
		rows = append(rows, g.Best())
	}
	return rows
}

// Records emits the best record of every registered group, scores included.
func (p *MergePlan) Records() []RowRecord {
	records := make([]RowRecord, 0, len(p.Groups))
	for _, g := range p.Groups {
		records = append(records, g.BestRecord())
	}
	return records
}

// ConsumedRows counts every row taken out of the pool into a group, blank groups included.
// Together with Summary.DuplicateKeys it always equals Summary.InputRows.
func (p *MergePlan) ConsumedRows() int {
	total := 0
	for _, g := range p.Groups {
		total += g.Size()
	}
	for _, g := range p.Blank {
		total += g.Size()
	}
	return total
}

// buildSummary computes aggregate counts for a plan.
func buildSummary(p *MergePlan, inputRows, duplicates int, threshold float64) PlanSummary {
	summary := PlanSummary{
		InputRows:     inputRows,
		Groups:        len(p.Groups),
		DuplicateKeys: duplicates,
		Threshold:     threshold,
	}

	for _, g := range p.Groups {
		if len(g.Members) > 0 {
			summary.MergedGroups++
		} else {
			summary.Singletons++
		}
	}

	for _, g := range p.Blank {
		summary.BlankRows += g.Size()
	}

	return summary
}
