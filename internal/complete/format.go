package complete

// FormatChoices lays candidates out in left-justified columns no wider
// than width, the "choices line" spec.md §4.9 describes once a completion
// request is ambiguous ("remaining candidates are formatted into the
// choices line up to terminal width"). It returns one string per output
// row.
func FormatChoices(candidates []string, width int) []string {
	if len(candidates) == 0 {
		return nil
	}
	if width <= 0 {
		width = 80
	}

	colWidth := 0
	for _, c := range candidates {
		if len(c) > colWidth {
			colWidth = len(c)
		}
	}
	colWidth += 2 // minimum gap between columns

	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}

	var rows []string
	var row []byte
	for i, c := range candidates {
		pad := colWidth - len(c)
		row = append(row, c...)
		if (i+1)%cols != 0 && i != len(candidates)-1 {
			for j := 0; j < pad; j++ {
				row = append(row, ' ')
			}
		} else {
			rows = append(rows, string(row))
			row = row[:0]
		}
	}
	return rows
}
