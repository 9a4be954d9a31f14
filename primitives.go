package valstream

// Named primitive producers. Each streams exactly one primitive call, so
// valstream.U64(42) can be handed to anything that takes a Value.
type (
	I64  int64
	U64  uint64
	F64  float64
	Bool bool
	Char rune
	Str  string
)

func (v I64) Stream(d *Driver) error  { return d.I64(int64(v)) }
func (v U64) Stream(d *Driver) error  { return d.U64(uint64(v)) }
func (v F64) Stream(d *Driver) error  { return d.F64(float64(v)) }
func (v Bool) Stream(d *Driver) error { return d.Bool(bool(v)) }
func (v Char) Stream(d *Driver) error { return d.Char(rune(v)) }
func (v Str) Stream(d *Driver) error  { return d.Str(string(v)) }

// None streams the absence of a value.
var None Value = noneValue{}

type noneValue struct{}

func (noneValue) Stream(d *Driver) error { return d.None() }

// Seq streams its elements as a sequence with a size hint.
type Seq []Value

func (s Seq) Stream(d *Driver) error {
	if err := d.SeqBegin(len(s)); err != nil {
		return err
	}
	for _, v := range s {
		if err := d.SeqElem(v); err != nil {
			return err
		}
	}
	return d.SeqEnd()
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map streams its entries as a map, in slice order.
type Map []Entry

func (m Map) Stream(d *Driver) error {
	if err := d.MapBegin(len(m)); err != nil {
		return err
	}
	for _, e := range m {
		if err := d.MapEntry(e.Key, e.Value); err != nil {
			return err
		}
	}
	return d.MapEnd()
}
