package valstream

// Driver sits between a producer and a consumer. Every call is checked
// against a Stack first; valid calls are forwarded to the consumer, invalid
// ones are not. The first failure, whether from the Stack, the consumer or a
// nested producer, is latched: later calls return it without forwarding
// anything, so a consumer never observes a malformed sequence of calls.
//
// A Driver is created by StreamValue for one operation and must not be
// retained by producers after Stream returns.
type Driver struct {
	stack Stack
	out   FullStream
	err   error
}

func newDriver(s Stream) *Driver { return &Driver{out: Complete(s)} }

// Err returns the latched error, if any.
func (d *Driver) Err() error { return d.err }

// Depth returns the number of open sequences and maps.
func (d *Driver) Depth() int { return d.stack.Depth() }

func (d *Driver) fail(err error) error {
	if err != nil && d.err == nil {
		d.err = err
	}
	return err
}

func (d *Driver) I64(v int64) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.I64(v))
}

func (d *Driver) U64(v uint64) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.U64(v))
}

func (d *Driver) F64(v float64) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.F64(v))
}

func (d *Driver) Bool(v bool) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.Bool(v))
}

func (d *Driver) Char(v rune) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.Char(v))
}

func (d *Driver) Str(v string) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.Str(v))
}

func (d *Driver) None() error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.None())
}

// Fmt streams a displayable primitive that has no dedicated method.
func (d *Driver) Fmt(a Arguments) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.Primitive(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.Fmt(a))
}

// Value streams a nested producer at the current position. A nil Value
// streams none.
func (d *Driver) Value(v Value) error {
	if d.err != nil {
		return d.err
	}
	if v == nil {
		return d.None()
	}
	if err := v.Stream(d); err != nil {
		return d.fail(err)
	}
	return d.err
}

func (d *Driver) SeqBegin(hint int) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.SeqBegin(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.SeqBegin(hint))
}

// SeqElemBegin announces an element; exactly one item must follow.
func (d *Driver) SeqElemBegin() error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.SeqElem(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.SeqElem())
}

// SeqElem announces an element and streams v as that element.
func (d *Driver) SeqElem(v Value) error {
	if err := d.SeqElemBegin(); err != nil {
		return err
	}
	return d.Value(v)
}

func (d *Driver) SeqEnd() error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.SeqEnd(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.SeqEnd())
}

func (d *Driver) MapBegin(hint int) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.MapBegin(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.MapBegin(hint))
}

// MapKeyBegin announces a key; exactly one item must follow.
func (d *Driver) MapKeyBegin() error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.MapKey(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.MapKeyBegin())
}

// MapValueBegin announces a value; exactly one item must follow.
func (d *Driver) MapValueBegin() error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.MapValue(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.MapValueBegin())
}

// MapKey announces a key and streams k as that key.
func (d *Driver) MapKey(k Value) error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.MapKey(); err != nil {
		return d.fail(err)
	}
	if err := d.fail(d.out.MapKey()); err != nil {
		return err
	}
	return d.Value(k)
}

// MapValue announces a value and streams v as that value.
func (d *Driver) MapValue(v Value) error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.MapValue(); err != nil {
		return d.fail(err)
	}
	if err := d.fail(d.out.MapValue()); err != nil {
		return err
	}
	return d.Value(v)
}

// MapEntry streams one key/value pair.
func (d *Driver) MapEntry(k, v Value) error {
	if err := d.MapKey(k); err != nil {
		return err
	}
	return d.MapValue(v)
}

func (d *Driver) MapEnd() error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.stack.MapEnd(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.MapEnd())
}

// end verifies the stack is empty and notifies the consumer.
func (d *Driver) end() error {
	if d.err != nil {
		return d.err
	}
	if err := d.stack.End(); err != nil {
		return d.fail(err)
	}
	return d.fail(d.out.End())
}
