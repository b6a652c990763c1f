package core

// NoDescription is the comment of a static column that matches no code.
const NoDescription = "No description available"

// DescribeColumns returns one description row per column, in column order.
// A column named like a dictionary code takes that code's description;
// every other column (patientid, split columns, suffixed names) gets
// NoDescription.
func DescribeColumns(columns []string, codes []Code) []DescriptionRow {
	idx := indexCodes(codes)

	rows := make([]DescriptionRow, len(columns))
	for i, col := range columns {
		comment, ok := idx.description(col)
		if !ok {
			comment = NoDescription
		}
		rows[i] = DescriptionRow{Variable: col, Comment: comment}
	}
	return rows
}
