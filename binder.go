package sqlbuilder

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/golobby/sqlbuilder/schema"
)

type binder struct {
	s *schema.Table
	// layout parses Date columns returned as text.
	layout string
	// limit caps the number of bound rows, 0 means unlimited.
	limit int
}

func newBinder(s *schema.Table, layout string) *binder {
	return &binder{s: s, layout: layout}
}

// dateLayouts are tried after the binder's layout; go-sqlite3 writes time.Time values in the first one.
var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dateScanner stores a Date column into a time.Time or *time.Time field, whether the driver
// returns it as time.Time or as text.
type dateScanner struct {
	dst    reflect.Value
	layout string
}

func (d dateScanner) Scan(src interface{}) error {
	var text string
	switch v := src.(type) {
	case nil:
		d.dst.Set(reflect.Zero(d.dst.Type()))
		return nil
	case time.Time:
		return d.set(v)
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("cannot store %T into a date field", src)
	}
	for _, layout := range append([]string{d.layout}, dateLayouts...) {
		if t, err := time.Parse(layout, text); err == nil {
			return d.set(t)
		}
	}
	return fmt.Errorf("date %q does not match layout %q", text, d.layout)
}

func (d dateScanner) set(t time.Time) error {
	if d.dst.Kind() == reflect.Ptr {
		d.dst.Set(reflect.ValueOf(&t))
		return nil
	}
	d.dst.Set(reflect.ValueOf(t))
	return nil
}

// unqualified strips an optional table prefix and identifier quotes from a result column name.
func unqualified(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.Trim(name, "\"`[]")
}

// ptrsFor returns scan targets for v, an addressable struct, in result column order.
// Columns with no mapped field are scanned into throwaway values.
func (b *binder) ptrsFor(v reflect.Value, columns []string) ([]interface{}, error) {
	ptrs := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		field, ok := b.s.FieldFor(unqualified(col))
		if !ok {
			ptrs = append(ptrs, new(interface{}))
			continue
		}
		f := v.FieldByName(field)
		if !f.IsValid() {
			return nil, fmt.Errorf("%s has no field %s", v.Type(), field)
		}
		if isTimeField(f.Type()) {
			ptrs = append(ptrs, dateScanner{dst: f, layout: b.layout})
			continue
		}
		ptrs = append(ptrs, f.Addr().Interface())
	}
	return ptrs, nil
}

func isTimeField(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t == reflect.TypeOf(time.Time{})
}

// bind binds given rows to the given object at obj. obj should be a pointer to a struct
// or to a slice of structs or struct pointers.
func (b *binder) bind(rows *sql.Rows, obj interface{}) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	t := reflect.TypeOf(obj)
	v := reflect.ValueOf(obj)
	if t == nil || t.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("obj should be a non nil ptr")
	}
	// since passed input is always a pointer one deref is necessary
	t = t.Elem()
	v = v.Elem()

	if t.Kind() == reflect.Slice {
		elem := t.Elem()
		isPtr := elem.Kind() == reflect.Ptr
		if isPtr {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return fmt.Errorf("cannot bind rows to %s", t)
		}
		count := 0
		for rows.Next() {
			rowValue := reflect.New(elem)
			ptrs, err := b.ptrsFor(rowValue.Elem(), columns)
			if err != nil {
				return err
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			if isPtr {
				v.Set(reflect.Append(v, rowValue))
			} else {
				v.Set(reflect.Append(v, rowValue.Elem()))
			}
			count++
			if b.limit > 0 && count >= b.limit {
				break
			}
		}
		return rows.Err()
	}

	if t.Kind() != reflect.Struct {
		return fmt.Errorf("cannot bind rows to %s", t)
	}
	if rows.Next() {
		ptrs, err := b.ptrsFor(v, columns)
		if err != nil {
			return err
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
	}
	return rows.Err()
}

// bindToMap reads every row into a column name -> value map.
func bindToMap(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var ms []map[string]interface{}
	for rows.Next() {
		ptrs := make([]interface{}, len(columns))
		for i := range ptrs {
			ptrs[i] = new(interface{})
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		m := map[string]interface{}{}
		for i, ptr := range ptrs {
			m[unqualified(columns[i])] = *(ptr.(*interface{}))
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}
