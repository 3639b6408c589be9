package changelog

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	id "intake/pkg/domain"
)

var defaultExcluded = []string{"id", "createdAt", "updatedAt"}

type diffOptions struct {
	excluded map[string]struct{}
}

// DiffOption adjusts how proposals are compared.
type DiffOption func(*diffOptions)

// ExcludeFields replaces the default exclusions (id, createdAt, updatedAt).
func ExcludeFields(fields ...string) DiffOption {
	return func(o *diffOptions) {
		o.excluded = toSet(fields)
	}
}

func toSet(fields []string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// diff compares proposed against old in proposal order. It may panic if a
// value's String method does; Auditor.Diff recovers.
func diff(parent Parent, old Snapshot, proposed []FieldValue, actor id.UserID, now time.Time, opts ...DiffOption) ([]Entry, error) {
	if !parent.Kind.IsValid() {
		return nil, fmt.Errorf("unknown parent kind %q", parent.Kind)
	}
	o := diffOptions{excluded: toSet(defaultExcluded)}
	for _, opt := range opts {
		opt(&o)
	}

	var entries []Entry
	for _, fv := range proposed {
		if _, skip := o.excluded[fv.Name]; skip {
			continue
		}
		oldValue := Render(old[fv.Name])
		newValue := Render(fv.Value)
		if sameValue(old[fv.Name], fv.Value) {
			continue
		}
		entries = append(entries, Entry{
			ID:        id.NewChangelogID(),
			Parent:    parent,
			FieldName: fv.Name,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: actor,
			ChangedAt: now,
		})
	}
	return entries, nil
}

// sameValue compares a and b after following pointers. Values of different
// types always differ; times compare as instants.
func sameValue(a, b any) bool {
	av, aok := deref(a)
	bv, bok := deref(b)
	if !aok || !bok {
		return aok == bok
	}
	if av.Type() != bv.Type() {
		return false
	}
	if at, ok := av.Interface().(time.Time); ok {
		return at.Equal(bv.Interface().(time.Time))
	}
	return reflect.DeepEqual(av.Interface(), bv.Interface())
}

// deref follows pointers and interfaces. It reports false for an absent value.
func deref(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

// Render returns the canonical string form of v, or nil when v is absent.
// Pointers are followed and times are rendered in UTC as RFC 3339.
func Render(v any) *string {
	rv, ok := deref(v)
	if !ok {
		return nil
	}

	var s string
	switch t := rv.Interface().(type) {
	case time.Time:
		s = t.UTC().Format(time.RFC3339Nano)
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return &s
}
