package valstream

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Of returns a Value for an arbitrary Go value using reflection:
//
//   - values implementing Value stream themselves;
//   - bool, integer, unsigned, float and string kinds stream as primitives;
//   - nil, nil pointers and nil interfaces stream as none;
//   - encoding.TextMarshaler implementations stream as strings;
//   - slices and arrays stream as sequences, maps as maps with sorted keys;
//   - structs stream as maps of their exported fields (see ResolveStructKey).
//
// Anything else is streamed through Fmt. Self-referential data fails with
// ErrDepthExceeded once MaxDepth containers, or more than MaxDepth pointers
// and interfaces in a row, are open.
func Of(x any) Value {
	if v, ok := x.(Value); ok {
		return v
	}
	return reflected{rv: reflect.ValueOf(x)}
}

type reflected struct{ rv reflect.Value }

func (r reflected) Stream(d *Driver) error { return streamReflect(d, r.rv, 0) }

var (
	valueType         = reflect.TypeFor[Value]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// streamReflect streams rv; indirect counts the pointers and interfaces
// followed since the last container.
func streamReflect(d *Driver, rv reflect.Value, indirect int) error {
	if !rv.IsValid() {
		return d.None()
	}
	if rv.Type().Implements(valueType) && rv.CanInterface() {
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			return d.None()
		}
		return d.Value(rv.Interface().(Value))
	}
	if rv.Type().Implements(textMarshalerType) && rv.CanInterface() {
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			return d.None()
		}
		b, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return Wrap(err)
		}
		return d.Str(string(b))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return d.Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.I64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return d.U64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return d.F64(rv.Float())
	case reflect.String:
		return d.Str(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return d.None()
		}
		if indirect >= MaxDepth {
			return &Error{Code: CodeDepthExceeded, Message: "more than " + strconv.Itoa(MaxDepth) + " pointers or interfaces in a row"}
		}
		return streamReflect(d, rv.Elem(), indirect+1)
	case reflect.Slice, reflect.Array:
		return streamSeq(d, rv)
	case reflect.Map:
		return streamMap(d, rv)
	case reflect.Struct:
		return streamStruct(d, rv)
	}
	if rv.CanInterface() {
		return d.Fmt(Args("%v", rv.Interface()))
	}
	return d.Fmt(Args("<%s>", rv.Type()))
}

func streamSeq(d *Driver, rv reflect.Value) error {
	n := rv.Len()
	if err := d.SeqBegin(n); err != nil {
		return err
	}
	for i := range n {
		if err := d.SeqElemBegin(); err != nil {
			return err
		}
		if err := streamReflect(d, rv.Index(i), 0); err != nil {
			return err
		}
	}
	return d.SeqEnd()
}

func streamMap(d *Driver, rv reflect.Value) error {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	if err := d.MapBegin(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := d.MapKeyBegin(); err != nil {
			return err
		}
		if err := streamReflect(d, k, 0); err != nil {
			return err
		}
		if err := d.MapValueBegin(); err != nil {
			return err
		}
		if err := streamReflect(d, rv.MapIndex(k), 0); err != nil {
			return err
		}
	}
	return d.MapEnd()
}

// compareKeys orders map keys of the same kind naturally and falls back to
// their printed form.
func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Bool:
		if a.Bool() == b.Bool() {
			return 0
		}
		if !a.Bool() {
			return -1
		}
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func streamStruct(d *Driver, rv reflect.Value) error {
	t := rv.Type()
	fields := make([]int, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || ResolveStructKey(sf) == "-" {
			continue
		}
		fields = append(fields, i)
	}
	if err := d.MapBegin(len(fields)); err != nil {
		return err
	}
	for _, i := range fields {
		if err := d.MapKeyBegin(); err != nil {
			return err
		}
		if err := d.Str(ResolveStructKey(t.Field(i))); err != nil {
			return err
		}
		if err := d.MapValueBegin(); err != nil {
			return err
		}
		if err := streamReflect(d, rv.Field(i), 0); err != nil {
			return err
		}
	}
	return d.MapEnd()
}

// ResolveStructKey resolves the map key a struct field streams under.
// Priority: valstream:"name" > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if vt := sf.Tag.Get("valstream"); vt != "" {
		if i := strings.IndexByte(vt, ','); i >= 0 {
			vt = vt[:i]
		}
		if vt != "" {
			return vt
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}
