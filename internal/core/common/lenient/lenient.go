// Package lenient decodes JSON request bodies whose numeric fields may
// arrive as strings, as browser form input does.
package lenient

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

type numKind int

const (
	kindInt numKind = iota + 1
	kindFloat
)

var fieldCache sync.Map // reflect.Type -> map[string]numKind

// Unmarshal decodes data into v, a pointer to a struct. Numeric fields of v
// accept a JSON number, a numeric string, a boolean, an empty string or null.
// Values that do not parse become 0, and fractional values are truncated for
// integer fields. Everything else decodes as encoding/json would.
func Unmarshal(data []byte, v any) error {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return json.Unmarshal(data, v)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return json.Unmarshal(data, v)
	}

	kinds := numericFields(t.Elem())
	changed := false
	for key, msg := range raw {
		kind, ok := kinds[key]
		if !ok {
			continue
		}
		if fixed, ok := coerce(msg, kind); ok {
			raw[key] = fixed
			changed = true
		}
	}
	if !changed {
		return json.Unmarshal(data, v)
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(normalized, v)
}

// coerce rewrites msg into a plain JSON number. It reports false when msg
// is already acceptable or holds an object or array.
func coerce(msg json.RawMessage, kind numKind) (json.RawMessage, bool) {
	var val any
	if err := json.Unmarshal(msg, &val); err != nil || val == nil {
		return nil, false
	}

	switch v := val.(type) {
	case float64:
		if kind == kindFloat || !strings.ContainsAny(string(msg), ".eE") {
			return nil, false
		}
	case string:
		val = strings.TrimSpace(v)
	case bool:
	default:
		return nil, false
	}

	f, err := cast.ToFloat64E(val)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}

	if kind == kindInt {
		return json.RawMessage(strconv.FormatInt(int64(f), 10)), true
	}
	return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64)), true
}

func numericFields(t reflect.Type) map[string]numKind {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]numKind)
	}
	kinds := map[string]numKind{}
	collect(t, kinds)
	fieldCache.Store(t, kinds)
	return kinds
}

func collect(t reflect.Type, kinds map[string]numKind) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if f.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			collect(ft, kinds)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}

		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			kinds[name] = kindInt
		case reflect.Float32, reflect.Float64:
			kinds[name] = kindFloat
		}
	}
}
