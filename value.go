package valstream

// Value is implemented by data with a streamable structure. Stream issues a
// self-consistent sequence of Driver calls describing exactly one value:
//
//   - a primitive issues one primitive call;
//   - a sequence issues SeqBegin, then SeqElem (or SeqElemBegin followed by
//     one item) per element, then SeqEnd;
//   - a map issues MapBegin, then per entry MapKey and MapValue (or
//     MapKeyBegin/MapValueBegin each followed by one item), then MapEnd.
//
// Streaming never mutates the producer. What is emitted need not match the
// producer's internal representation.
type Value interface {
	Stream(d *Driver) error
}

// ValueFunc adapts a function to the Value interface.
type ValueFunc func(d *Driver) error

func (f ValueFunc) Stream(d *Driver) error { return f(d) }
