package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-tracker-service/internal/core/domain"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "users", true},
		{"underscore start", "_team1", true},
		{"max length", strings.Repeat("a", 20), true},
		{"too short", "abcd", false},
		{"too long", strings.Repeat("a", 21), false},
		{"digit start", "1users", false},
		{"hyphen", "my-users", false},
		{"space", "my users", false},
		{"artifact suffix", "users_photos", false},
		{"artifact suffix any case", "users_PHOTOS", false},
		{"suffix mid-name", "a_photos_b", true},
		{"internal prefix", "sqlite_users", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TableName(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestPolicy_PropertyName(t *testing.T) {
	assert.NoError(t, Compact.PropertyName("col", "id"))
	assert.NoError(t, Compact.PropertyName("col", "firstName"))
	assert.Error(t, Compact.PropertyName("col", "averyveryLongName"))
	assert.Error(t, Compact.PropertyName("col", "recordId"))
	assert.Error(t, Compact.PropertyName("col", "PHOTOID"))
	assert.Error(t, Compact.PropertyName("col", "9lives"))

	assert.Error(t, Extended.PropertyName("col", "id"))
	assert.NoError(t, Extended.PropertyName("col", "averyveryLongName"))
}

func TestPolicy_ColumnNames(t *testing.T) {
	assert.NoError(t, Compact.ColumnNames([]string{"id", "firstName", "lastName"}))

	err := Compact.ColumnNames(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns is required")

	assert.Error(t, Compact.ColumnNames([]string{}))
	assert.Error(t, Compact.ColumnNames([]string{"id", "id"}))
	assert.Error(t, Compact.ColumnNames([]string{"name", "Name"}))

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "c" + strings.Repeat("x", i)
	}
	assert.Error(t, Compact.ColumnNames(eleven))

	long := make([]string, 11)
	for i := range long {
		long[i] = "column" + strings.Repeat("x", i)
	}
	assert.NoError(t, Extended.ColumnNames(long))
}

func TestValueAndDayLabel(t *testing.T) {
	assert.NoError(t, Value("value", "John"))
	assert.Error(t, Value("value", ""))
	assert.Error(t, Value("value", strings.Repeat("x", 51)))

	assert.NoError(t, DayLabel("day-1"))
	assert.Error(t, DayLabel(""))
	assert.Error(t, DayLabel("12345678901"))
}

func TestPolicy_Batch(t *testing.T) {
	a := domain.NewRecord("id", "1", "firstName", "John")
	b := domain.NewRecord("firstName", "Jane", "id", "2")

	// key sets are compared without order at this stage
	assert.NoError(t, Compact.Batch([]domain.Record{a, b}))

	c := domain.NewRecord("id", "3", "lastName", "Doe")
	err := Compact.Batch([]domain.Record{a, c})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records[1]")

	assert.Error(t, Compact.Batch(nil))
	assert.Error(t, Compact.Batch([]domain.Record{domain.NewRecord()}))
	assert.Error(t, Compact.Batch([]domain.Record{domain.NewRecord("id", "")}))

	big := make([]domain.Record, MaxBatchSize+1)
	for i := range big {
		big[i] = domain.NewRecord("id", "x")
	}
	assert.Error(t, Compact.Batch(big))
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, Compact, p)

	p, err = PolicyByName("Extended")
	require.NoError(t, err)
	assert.Equal(t, Extended, p)

	_, err = PolicyByName("loose")
	assert.Error(t, err)
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		name   string
		column string
		lookup string
		ok     bool
	}{
		{"both compact", "compact", "compact", true},
		{"both extended", "extended", "Extended", true},
		{"extended columns compact lookup", "extended", "compact", false},
		{"compact columns extended lookup", "compact", "extended", false},
		{"unknown", "compact", "loose", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, lookup, err := Policies(tt.column, tt.lookup)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, lookup.Covers(column))
		})
	}
}
