package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

// TableNamer lets a record type pick its own table name.
type TableNamer interface {
	TableName() string
}

const tagName = "sqlb"

var (
	cache       sync.Map
	timeType    = reflect.TypeOf(time.Time{})
	pluralizer  = pluralize.NewClient()
	pluralizeMu sync.Mutex
)

type fieldTag struct {
	Name    string
	Type    string
	Virtual bool
	PK      bool
}

// fieldMetadataFromTag parses `sqlb:"col=name type=string pk=true"`.
func fieldMetadataFromTag(t string) fieldTag {
	var tag fieldTag
	if t == "" {
		return tag
	}
	for _, tuple := range strings.Fields(t) {
		key, value := tuple, ""
		if idx := strings.Index(tuple, "="); idx >= 0 {
			key, value = tuple[:idx], tuple[idx+1:]
		}
		switch key {
		case "col":
			tag.Name = value
		case "type":
			tag.Type = value
		case "pk":
			tag.PK = value == "" || value == "true"
		}
	}
	if tag.Name == "_" {
		tag.Virtual = true
	}
	return tag
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Slice {
		t = t.Elem()
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
	}
	return t
}

func inferColumnType(t reflect.Type) (ColumnType, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == timeType {
		return Date, true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, true
	case reflect.String:
		return String, true
	default:
		return 0, false
	}
}

func tableNameOf(v interface{}, t reflect.Type) string {
	if namer, ok := v.(TableNamer); ok {
		return namer.TableName()
	}
	if namer, ok := reflect.New(t).Interface().(TableNamer); ok {
		return namer.TableName()
	}
	pluralizeMu.Lock()
	defer pluralizeMu.Unlock()
	return pluralizer.Plural(strcase.ToSnake(t.Name()))
}

// Of extracts a table description from a struct value, pointer or slice of them.
// Fields without a supported type and fields tagged col=_ are skipped. Results are cached per type.
func Of(v interface{}) (*Table, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot describe nil value")
	}
	t := indirectType(reflect.TypeOf(v))
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", t.Kind())
	}
	if cached, ok := cache.Load(t); ok {
		return cached.(*Table), nil
	}

	var columns []Column
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)
		if !ft.IsExported() {
			continue
		}
		tag := fieldMetadataFromTag(ft.Tag.Get(tagName))
		if tag.Virtual {
			continue
		}
		c := Column{Field: ft.Name, Name: tag.Name, PrimaryKey: tag.PK || strings.ToLower(ft.Name) == "id"}
		if c.Name == "" {
			c.Name = strcase.ToSnake(ft.Name)
		}
		if tag.Type != "" {
			typ, err := parseColumnType(tag.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t.Name(), ft.Name, err)
			}
			c.Type = typ
		} else {
			typ, ok := inferColumnType(ft.Type)
			if !ok {
				continue
			}
			c.Type = typ
		}
		columns = append(columns, c)
	}

	table := New(tableNameOf(v, t), columns...)
	actual, _ := cache.LoadOrStore(t, table)
	return actual.(*Table), nil
}

// MustOf is like Of but panics on error.
func MustOf(v interface{}) *Table {
	t, err := Of(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Values reads the column values of item, keyed by column name. item must be of the
// struct type the table was extracted from.
func (t *Table) Values(item interface{}) (map[string]interface{}, error) {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot read values of nil %s", v.Type())
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", v.Kind())
	}
	out := make(map[string]interface{}, len(t.columns))
	for _, c := range t.columns {
		field, ok := t.columnToField[c.Name]
		if !ok {
			return nil, fmt.Errorf("column %s of %s has no backing field", c.Name, t.name)
		}
		fv := v.FieldByName(field)
		if !fv.IsValid() {
			return nil, fmt.Errorf("%s has no field %s", v.Type(), field)
		}
		for fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				break
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Ptr {
			out[c.Name] = nil
			continue
		}
		out[c.Name] = fv.Interface()
	}
	return out, nil
}
