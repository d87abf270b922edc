package models

// Row maps a column name to its cell value.
type Row map[string]Value

// Column describes one header column of a table.
type Column struct {
	// Name is the header text.
	Name string `json:"name"`
	// Kind is the type inferred for every cell of the column.
	Kind Kind `json:"kind"`
}

// RawTable is the decoded content of a single sheet.
// Every row carries exactly the table's column set.
type RawTable struct {
	// Sheet is the sheet name the table was read from.
	Sheet string
	// Columns lists the header columns in sheet order.
	Columns []Column
	// Rows lists the data rows in sheet order.
	Rows []Row
}

// HasColumn reports whether the table has a header named name.
func (t *RawTable) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Column returns the header column named name.
func (t *RawTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// WithRows returns a copy of t sharing its header but holding rows.
func (t *RawTable) WithRows(rows []Row) *RawTable {
	return &RawTable{
		Sheet:   t.Sheet,
		Columns: append([]Column(nil), t.Columns...),
		Rows:    rows,
	}
}
