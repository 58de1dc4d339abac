package domain

import "strings"

const (
	// RecordIDColumn is the surrogate key of every record table.
	RecordIDColumn = "recordId"
	// ArtifactIDColumn is the surrogate key of every artifact table.
	ArtifactIDColumn = "photoId"
	// ArtifactTableSuffix names the artifact table paired with a record table.
	ArtifactTableSuffix = "_photos"
)

// ReservedColumns lists identifiers callers may not use as column names.
var ReservedColumns = []string{RecordIDColumn, ArtifactIDColumn}

// IsReservedColumn compares case-insensitively, since the embedded engine
// does not distinguish identifier case.
func IsReservedColumn(name string) bool {
	for _, r := range ReservedColumns {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}

// ArtifactTable returns the name of the artifact table paired with table.
func ArtifactTable(table string) string {
	return table + ArtifactTableSuffix
}

// Table is a record table resolved from live storage. Columns are in
// declaration order without the surrogate key; the first is the identity
// column.
type Table struct {
	Name    string
	Columns []string
}

// Identity returns the identity column name.
func (t Table) Identity() string {
	if len(t.Columns) == 0 {
		return ""
	}
	return t.Columns[0]
}

// Rest returns the non-identity columns in declaration order.
func (t Table) Rest() []string {
	if len(t.Columns) == 0 {
		return nil
	}
	return t.Columns[1:]
}

// HasColumn reports whether name is one of the caller-visible columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
