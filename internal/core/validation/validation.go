// Package validation checks caller-supplied identifiers and values before
// they reach storage. Every failure is a domain.KindValidation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"submission-tracker-service/internal/core/domain"
)

const (
	MinTableNameLen = 5
	MaxTableNameLen = 20
	MaxValueLen     = 50
	MaxDayLabelLen  = 10
	MaxBatchSize    = 2000

	internalTablePrefix = "sqlite_"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("notreserved", func(fl validator.FieldLevel) bool {
		return !domain.IsReservedColumn(fl.Field().String())
	}))
	must(v.RegisterValidation("notartifactsuffix", func(fl validator.FieldLevel) bool {
		return !strings.HasSuffix(strings.ToLower(fl.Field().String()), domain.ArtifactTableSuffix)
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// TableName accepts 5-20 identifier characters not ending in the artifact
// table suffix. The suffix may appear mid-name.
func TableName(name string) error {
	tag := fmt.Sprintf("required,min=%d,max=%d,identifier,notartifactsuffix", MinTableNameLen, MaxTableNameLen)
	if err := check("tableName", name, tag); err != nil {
		return err
	}
	if strings.HasPrefix(strings.ToLower(name), internalTablePrefix) {
		return domain.Validationf("tableName must not start with %q", internalTablePrefix)
	}
	return nil
}

// Value accepts plain text of 1-50 characters.
func Value(field, v string) error {
	return check(field, v, fmt.Sprintf("required,max=%d", MaxValueLen))
}

// DayLabel accepts free text of 1-10 characters.
func DayLabel(day string) error {
	return check("day", day, fmt.Sprintf("required,max=%d", MaxDayLabelLen))
}

func check(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Validationf("%s %s", field, describe(verrs[0]))
	}
	return domain.Validationf("invalid %s", field)
}

func describe(fe validator.FieldError) string {
	unit := "items"
	if fe.Kind() == reflect.String {
		unit = "characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must have at most %s %s", fe.Param(), unit)
	case "identifier":
		return "must start with a letter or underscore and contain only letters, digits and underscores"
	case "notreserved":
		return fmt.Sprintf("must not be one of %s", strings.Join(domain.ReservedColumns, ", "))
	case "notartifactsuffix":
		return fmt.Sprintf("must not end with %q", domain.ArtifactTableSuffix)
	case "unique":
		return "must not contain duplicates"
	default:
		return "failed on " + fe.Tag()
	}
}

func sortedKeys(r domain.Record) []string {
	keys := r.Keys()
	slices.Sort(keys)
	return keys
}
