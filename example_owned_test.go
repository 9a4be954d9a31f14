//go:build !valstream_noalloc

package valstream_test

import (
	"fmt"

	"github.com/reoring/valstream"
)

// Types can stream a structure that differs from what they hold. marker has
// no fields but streams {"nested": {"key": 42}}.
type marker struct{}

func (marker) Stream(d *valstream.Driver) error {
	if err := d.MapBegin(1); err != nil {
		return err
	}
	if err := d.MapKey(valstream.Str("nested")); err != nil {
		return err
	}
	if err := d.MapValueBegin(); err != nil {
		return err
	}
	if err := d.MapBegin(1); err != nil {
		return err
	}
	if err := d.MapEntry(valstream.Str("key"), valstream.U64(42)); err != nil {
		return err
	}
	if err := d.MapEnd(); err != nil {
		return err
	}
	return d.MapEnd()
}

func ExampleFromValue() {
	o, err := valstream.FromValue(marker{})
	if err != nil {
		panic(err)
	}
	fmt.Println(o)
	// Output: {"nested": {"key": 42}}
}
