package router

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Converters maps placeholder types to the regexp their values must match.
// A placeholder without a type ("<name>") uses "str".
var Converters = map[string]string{
	"str":  `[^/]+`,
	"int":  `[0-9]+`,
	"slug": `[-a-zA-Z0-9_]+`,
	"uuid": `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
	"path": `.+`,
}

// placeholderRe matches "<type:name>" and "<name>" placeholders.
var placeholderRe = regexp.MustCompile(`<(?:(\w+):)?(\w+)>`)

// Placeholder is a typed parameter embedded in a pattern.
type Placeholder struct {
	// Name is the parameter name (e.g., "slug")
	Name string

	// Type is the converter name (e.g., "slug", "int")
	Type string

	// Segment is the original placeholder (e.g., "<slug:slug>")
	Segment string
}

// Placeholders extracts the placeholders of a pattern in order.
func Placeholders(pattern string) []Placeholder {
	var params []Placeholder
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		typ := m[1]
		if typ == "" {
			typ = "str"
		}
		params = append(params, Placeholder{Name: m[2], Type: typ, Segment: m[0]})
	}
	return params
}

// converterRegexp returns the value regexp for a converter type.
func converterRegexp(typ string) (string, error) {
	expr, ok := Converters[typ]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownConverter, typ)
	}
	return expr, nil
}

// ValidateParam validates a parameter value against its converter type.
func ValidateParam(value, typ string) error {
	expr, err := converterRegexp(typ)
	if err != nil {
		return err
	}
	if !regexp.MustCompile(`^(?:` + expr + `)$`).MatchString(value) {
		return fmt.Errorf("invalid %s value: %q", typ, value)
	}
	return nil
}

// DecodeParams populates a struct with values from the params map.
// The target must be a pointer to a struct with `param` tags:
//
//	var p struct {
//	    Slug string `param:"slug"`
//	    Page int    `param:"page"`
//	}
//	err := router.DecodeParams(router.Params(r), &p)
func DecodeParams(params map[string]string, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		paramName := field.Tag.Get("param")
		if paramName == "" {
			continue
		}

		value, ok := params[paramName]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("parsing param %q: %w", paramName, err)
		}
	}

	return nil
}

// setField sets a field value from a string.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}
		// "path" converter values: "a/b/c" → ["a", "b", "c"]
		var parts []string
		if value != "" {
			parts = strings.Split(value, "/")
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
