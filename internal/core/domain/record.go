package domain

import (
	"bytes"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one row of caller data as an ordered set of string properties.
// Key order is significant: payloads must list properties in the table's
// column declaration order.
type Record struct {
	props *orderedmap.OrderedMap[string, string]
}

// NewRecord builds a record from alternating key, value arguments.
func NewRecord(kv ...string) Record {
	r := Record{props: orderedmap.New[string, string]()}
	for i := 0; i+1 < len(kv); i += 2 {
		r.props.Set(kv[i], kv[i+1])
	}
	return r
}

// RecordFromColumns pairs columns with values positionally.
func RecordFromColumns(columns, values []string) Record {
	r := Record{props: orderedmap.New[string, string]()}
	for i, c := range columns {
		if i < len(values) {
			r.props.Set(c, values[i])
		}
	}
	return r
}

func (r Record) Len() int {
	if r.props == nil {
		return 0
	}
	return r.props.Len()
}

func (r Record) Get(key string) (string, bool) {
	if r.props == nil {
		return "", false
	}
	return r.props.Get(key)
}

func (r *Record) Set(key, value string) {
	if r.props == nil {
		r.props = orderedmap.New[string, string]()
	}
	r.props.Set(key, value)
}

// Keys returns property names in payload order.
func (r Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	if r.props == nil {
		return keys
	}
	for p := r.props.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Values returns property values in payload order.
func (r Record) Values() []string {
	values := make([]string, 0, r.Len())
	if r.props == nil {
		return values
	}
	for p := r.props.Oldest(); p != nil; p = p.Next() {
		values = append(values, p.Value)
	}
	return values
}

// First returns the first property, which for a well-formed payload holds
// the identity value.
func (r Record) First() (key, value string, ok bool) {
	if r.props == nil {
		return "", "", false
	}
	p := r.props.Oldest()
	if p == nil {
		return "", "", false
	}
	return p.Key, p.Value, true
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.props == nil {
		return []byte("{}"), nil
	}
	return r.props.MarshalJSON()
}

// UnmarshalJSON keeps payload key order and rejects duplicate keys and
// non-string values, which a plain map decode would hide.
func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Validationf("record must be a JSON object")
	}

	props := orderedmap.New[string, string]()
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		if dataType != jsonparser.String {
			return Validationf("property %q must be a string", k)
		}
		v, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		if _, dup := props.Get(k); dup {
			return Validationf("duplicate property %q", k)
		}
		props.Set(k, v)
		return nil
	})
	if err != nil {
		return err
	}

	r.props = props
	return nil
}
