package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel builds an insert from the model's db tags. On conflict with
// conflictOn every other column except id and keep is overwritten.
func UpsertModel(table string, model any, conflictOn, keep []string, returning ...string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}

	skip := make(map[string]struct{}, len(conflictOn)+len(keep)+1)
	for _, c := range conflictOn {
		skip[c] = struct{}{}
	}
	for _, c := range keep {
		skip[c] = struct{}{}
	}
	skip["id"] = struct{}{}

	update := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := skip[c]; !ok {
			update = append(update, c)
		}
	}

	b := InsertInto(table).Columns(cols...).Values(vals...).OnConflict(conflictOn...)
	if len(update) > 0 {
		b.DoUpdate(update...)
	} else {
		b.DoNothing()
	}
	return b.Returning(returning...).ToSQL()
}

func InsertModel(table string, model any, returning ...string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Returning(returning...).ToSQL()
}

// ColumnsAndValues reads exported struct fields carrying a db tag, in declaration order.
func ColumnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
