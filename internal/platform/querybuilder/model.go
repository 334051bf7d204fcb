package querybuilder

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// InsertModel inserts one row built from the db tags of model, a struct or a pointer to one.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	row, err := modelRow(model)
	if err != nil {
		return "", nil, errors.Wrapf(err, "insert into %s", table)
	}
	return InsertInto(table).Columns(row.columns...).Values(row.values...).Suffix(suffix).ToSQL()
}

type taggedRow struct {
	columns []string
	values  []any
}

func modelRow(model any) (taggedRow, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return taggedRow{}, errors.New("nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return taggedRow{}, errors.Newf("model is a %s, not a struct", v.Kind())
	}

	var row taggedRow
	row.collect(v)
	if len(row.columns) == 0 {
		return taggedRow{}, errors.Newf("%s has no db columns", v.Type())
	}
	return row, nil
}

// collect flattens untagged embedded structs the way sqlx does when scanning.
func (r *taggedRow) collect(v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)

		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			r.collect(v.Field(i))
			continue
		}
		if !f.IsExported() || name == "" || name == "-" {
			continue
		}
		r.columns = append(r.columns, name)
		r.values = append(r.values, v.Field(i).Interface())
	}
}
