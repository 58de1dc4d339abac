package validation

import (
	"fmt"
	"slices"
	"strings"

	"submission-tracker-service/internal/core/domain"
)

// Policy is a bound profile for property names and column lists. Endpoints
// pick one; both profiles share the identifier and reserved-name rules.
type Policy struct {
	Name       string
	MinNameLen int
	MaxNameLen int
	MaxColumns int
}

var (
	Compact  = Policy{Name: "compact", MinNameLen: 1, MaxNameLen: 10, MaxColumns: 10}
	Extended = Policy{Name: "extended", MinNameLen: 5, MaxNameLen: 20, MaxColumns: 20}
)

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Compact.Name:
		return Compact, nil
	case Extended.Name:
		return Extended, nil
	default:
		return Policy{}, fmt.Errorf("unknown validation policy %q", name)
	}
}

// Covers reports whether every name q accepts also passes p.
func (p Policy) Covers(q Policy) bool {
	return p.MinNameLen <= q.MinNameLen && p.MaxNameLen >= q.MaxNameLen
}

// Policies resolves the column and lookup policies. The lookup policy must
// accept every column name the column policy lets through, otherwise some
// columns could be created but never used as identityColumn.
func Policies(column, lookup string) (Policy, Policy, error) {
	columnPolicy, err := PolicyByName(column)
	if err != nil {
		return Policy{}, Policy{}, fmt.Errorf("column policy: %w", err)
	}
	lookupPolicy, err := PolicyByName(lookup)
	if err != nil {
		return Policy{}, Policy{}, fmt.Errorf("lookup policy: %w", err)
	}
	if !lookupPolicy.Covers(columnPolicy) {
		return Policy{}, Policy{}, fmt.Errorf("lookup policy %q rejects names allowed by column policy %q", lookupPolicy.Name, columnPolicy.Name)
	}
	return columnPolicy, lookupPolicy, nil
}

// PropertyName validates a column or record property name.
func (p Policy) PropertyName(field, name string) error {
	tag := fmt.Sprintf("required,min=%d,max=%d,identifier,notreserved", p.MinNameLen, p.MaxNameLen)
	return check(field, name, tag)
}

// ColumnNames validates the column list of a new table.
func (p Policy) ColumnNames(names []string) error {
	if err := check("columns", names, fmt.Sprintf("required,min=1,max=%d,unique", p.MaxColumns)); err != nil {
		return err
	}
	for i, n := range names {
		if err := p.PropertyName(fmt.Sprintf("columns[%d]", i), n); err != nil {
			return err
		}
		for _, prev := range names[:i] {
			if strings.EqualFold(prev, n) {
				return domain.Validationf("columns[%d] duplicates %q", i, prev)
			}
		}
	}
	return nil
}

// Record validates one record payload: 1 to MaxColumns properties with
// valid names and values. Key uniqueness is enforced while decoding.
func (p Policy) Record(field string, r domain.Record) error {
	n := r.Len()
	if n == 0 {
		return domain.Validationf("%s must have at least 1 property", field)
	}
	if n > p.MaxColumns {
		return domain.Validationf("%s must have at most %d properties", field, p.MaxColumns)
	}
	keys := r.Keys()
	values := r.Values()
	for i, k := range keys {
		if err := p.PropertyName(fmt.Sprintf("%s.key", field), k); err != nil {
			return err
		}
		if err := Value(fmt.Sprintf("%s.%s", field, k), values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Batch validates 1-2000 records that all share the same property names.
// Order is not compared here; the record engine checks it against the live
// column order.
func (p Policy) Batch(records []domain.Record) error {
	if len(records) == 0 {
		return domain.Validationf("records must have at least 1 item")
	}
	if len(records) > MaxBatchSize {
		return domain.Validationf("records must have at most %d items", MaxBatchSize)
	}
	var want []string
	for i, r := range records {
		field := fmt.Sprintf("records[%d]", i)
		if err := p.Record(field, r); err != nil {
			return err
		}
		keys := sortedKeys(r)
		if i == 0 {
			want = keys
			continue
		}
		if !slices.Equal(keys, want) {
			return domain.Validationf("%s has different properties than records[0]", field)
		}
	}
	return nil
}
