package convert

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// Save files can carry NaN and infinite floats, which JSON numbers cannot
// express. Such values are written as these strings and read back into
// float fields.
const (
	nanText    = "NaN"
	posInfText = "Infinity"
	negInfText = "-Infinity"
)

func nonFiniteText(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return nanText, true
	case math.IsInf(f, 1):
		return posInfText, true
	case math.IsInf(f, -1):
		return negInfText, true
	}
	return "", false
}

func parseNonFinite(s string) (float64, bool) {
	switch s {
	case nanText:
		return math.NaN(), true
	case posInfText:
		return math.Inf(1), true
	case negInfText:
		return math.Inf(-1), true
	}
	return 0, false
}

// jsonField returns the JSON key of f, or "" when encoding/json skips it.
func jsonField(f reflect.StructField) (name string, omitEmpty bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

// member and object keep struct field order when a value is rebuilt
// generically.
type member struct {
	key   string
	value any
}

type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	encode := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
		return nil
	}

	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(m.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// finiteValue rebuilds v with every non-finite float replaced by its text
// form. Everything else encodes exactly as encoding/json would encode v.
func finiteValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return finiteValue(v.Elem())
	case reflect.Float32, reflect.Float64:
		if s, ok := nonFiniteText(v.Float()); ok {
			return s
		}
		return v.Interface()
	case reflect.Struct:
		t := v.Type()
		obj := make(object, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			name, omitEmpty := jsonField(t.Field(i))
			if name == "" {
				continue
			}
			fv := v.Field(i)
			if omitEmpty && isEmptyValue(fv) {
				continue
			}
			obj = append(obj, member{key: name, value: finiteValue(fv)})
		}
		return obj
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		fallthrough
	case reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = finiteValue(v.Index(i))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return v.Interface()
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = finiteValue(iter.Value())
		}
		return out
	}
	return v.Interface()
}

// zeroNonFinite returns a copy of the decoded tree g where every non-finite
// text sitting in a float position of t is replaced by 0, and how many were
// replaced.
func zeroNonFinite(t reflect.Type, g any) (any, int) {
	switch t.Kind() {
	case reflect.Pointer:
		return zeroNonFinite(t.Elem(), g)
	case reflect.Float32, reflect.Float64:
		if s, ok := g.(string); ok {
			if _, ok := parseNonFinite(s); ok {
				return json.Number("0"), 1
			}
		}
	case reflect.Struct:
		m, ok := g.(map[string]any)
		if !ok {
			return g, 0
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		total := 0
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _ := jsonField(f)
			if v, ok := m[name]; ok && name != "" {
				var n int
				out[name], n = zeroNonFinite(f.Type, v)
				total += n
			}
		}
		return out, total
	case reflect.Slice, reflect.Array:
		arr, ok := g.([]any)
		if !ok {
			return g, 0
		}
		out := make([]any, len(arr))
		total := 0
		for i, v := range arr {
			var n int
			out[i], n = zeroNonFinite(t.Elem(), v)
			total += n
		}
		return out, total
	}
	return g, 0
}

// setNonFinite writes the non-finite floats named in g back into v.
func setNonFinite(v reflect.Value, g any) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			setNonFinite(v.Elem(), g)
		}
	case reflect.Float32, reflect.Float64:
		if s, ok := g.(string); ok {
			if f, ok := parseNonFinite(s); ok {
				v.SetFloat(f)
			}
		}
	case reflect.Struct:
		m, ok := g.(map[string]any)
		if !ok {
			return
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			name, _ := jsonField(t.Field(i))
			if val, ok := m[name]; ok && name != "" {
				setNonFinite(v.Field(i), val)
			}
		}
	case reflect.Slice, reflect.Array:
		arr, ok := g.([]any)
		if !ok {
			return
		}
		for i := 0; i < v.Len() && i < len(arr); i++ {
			setNonFinite(v.Index(i), arr[i])
		}
	}
}

// decodeNonFinite retries a decode that failed on text in float fields.
// It returns orig unchanged when js holds no such text.
func decodeNonFinite(js []byte, v any, orig error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return orig
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return orig
	}
	patched, n := zeroNonFinite(rv.Elem().Type(), generic)
	if n == 0 {
		return orig
	}
	b, err := json.Marshal(patched)
	if err != nil {
		return orig
	}

	rv.Elem().SetZero()
	if err := json.Unmarshal(b, v); err != nil {
		return err
	}
	setNonFinite(rv.Elem(), generic)
	return nil
}
