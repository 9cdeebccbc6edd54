package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrMissingKey indicates that a claims field tagged as required was
// absent or zero after decoding.
var ErrMissingKey = errors.New("jwt: token is missing a required field")

// Unmarshal decodes a JSON claims payload into "dest" with standard
// encoding/json semantics plus one extension: struct fields tagged
// `json:"...,required"` must end up non-zero, otherwise the whole
// decode fails with ErrMissingKey.
//
//	type UserClaims struct {
//		Username string `json:"username,required"`
//	}
//
// encoding/json itself ignores the unknown "required" option, so tagged
// types still work everywhere else.
func Unmarshal(payload []byte, dest any) error {
	if err := json.Unmarshal(payload, dest); err != nil {
		return err
	}

	if v := reflect.ValueOf(dest); hasRequiredJSONTag(indirectType(v.Type()), nil) {
		return meetRequirements(v)
	}

	return nil
}

// hasRequiredJSONTag reports whether any field reachable from "typ"
// carries the required option. The seen set keeps mutually recursive
// types (A -> *B -> *A) from walking forever.
func hasRequiredJSONTag(typ reflect.Type, seen map[reflect.Type]bool) bool {
	if typ.Kind() != reflect.Struct || seen[typ] {
		return false
	}

	if seen == nil {
		seen = make(map[reflect.Type]bool)
	}
	seen[typ] = true

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		if field.Anonymous || field.IsExported() {
			ft := indirectType(field.Type)
			if ft.Kind() == reflect.Struct && hasRequiredJSONTag(ft, seen) {
				return true
			}

			if _, opts, ok := parseJSONTag(field); ok && opts["required"] {
				return true
			}
		}
	}

	return false
}

func meetRequirements(v reflect.Value) error {
	v = reflect.Indirect(v)
	if v.Kind() != reflect.Struct {
		return nil
	}

	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.Anonymous && !field.IsExported() {
			continue
		}

		value := v.Field(i)

		// Walk into embedded and nested structs so required tags on
		// composed claim types are honored too.
		if indirectType(field.Type).Kind() == reflect.Struct {
			if value.Kind() == reflect.Pointer && value.IsNil() {
				continue
			}

			if err := meetRequirements(value); err != nil {
				return err
			}

			continue
		}

		name, opts, ok := parseJSONTag(field)
		if !ok || !opts["required"] {
			continue
		}

		if value.IsZero() {
			return fmt.Errorf("%w: %q", ErrMissingKey, name)
		}
	}

	return nil
}

func parseJSONTag(field reflect.StructField) (name string, opts map[string]bool, ok bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok || tag == "-" {
		return "", nil, false
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = field.Name
	}

	opts = make(map[string]bool, len(parts)-1)
	for _, opt := range parts[1:] {
		opts[opt] = true
	}

	return name, opts, true
}

func indirectType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ
}
