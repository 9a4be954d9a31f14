//go:build !valstream_noalloc

package valstream

// OwnedBuilder is a consumer that captures everything streamed into it as an
// Owned tree. Primitives become leaves immediately; each SeqBegin/MapBegin
// opens an in-progress composite that is attached to its parent (or becomes
// the result) on the matching end. Fmt arguments are captured as strings.
//
// The builder relies on the call order guaranteed by the Driver, so it should
// be used through StreamValue rather than called directly.
type OwnedBuilder struct {
	open   []partial
	result Owned
	done   bool
}

type partial struct {
	kind     Kind
	seq      []Owned
	entries  []OwnedEntry
	key      Owned
	valueNow bool // map: the next item is a value
}

var _ FullStream = (*OwnedBuilder)(nil)

// maxPrealloc caps the capacity reserved from a size hint. Hints are advisory.
const maxPrealloc = 1024

// Result returns the captured value and whether a root value was completed.
func (b *OwnedBuilder) Result() (Owned, bool) { return b.result, b.done }

// Reset discards any captured state.
func (b *OwnedBuilder) Reset() {
	clear(b.open)
	b.open = b.open[:0]
	b.result = Owned{}
	b.done = false
}

func (b *OwnedBuilder) put(v Owned) error {
	n := len(b.open)
	if n == 0 {
		b.result = v
		b.done = true
		return nil
	}
	top := &b.open[n-1]
	switch top.kind {
	case KindSeq:
		top.seq = append(top.seq, v)
	case KindMap:
		if top.valueNow {
			top.entries = append(top.entries, OwnedEntry{Key: top.key, Value: v})
			top.key = Owned{}
			top.valueNow = false
		} else {
			top.key = v
		}
	}
	return nil
}

func (b *OwnedBuilder) Fmt(a Arguments) error { return b.put(OwnedStr(a.String())) }
func (b *OwnedBuilder) I64(v int64) error     { return b.put(OwnedI64(v)) }
func (b *OwnedBuilder) U64(v uint64) error    { return b.put(OwnedU64(v)) }
func (b *OwnedBuilder) F64(v float64) error   { return b.put(OwnedF64(v)) }
func (b *OwnedBuilder) Bool(v bool) error     { return b.put(OwnedBool(v)) }
func (b *OwnedBuilder) Char(v rune) error     { return b.put(OwnedChar(v)) }
func (b *OwnedBuilder) Str(v string) error    { return b.put(OwnedStr(v)) }
func (b *OwnedBuilder) None() error           { return b.put(OwnedNone()) }

func (b *OwnedBuilder) SeqBegin(hint int) error {
	p := partial{kind: KindSeq}
	if hint > 0 {
		p.seq = make([]Owned, 0, min(hint, maxPrealloc))
	}
	b.open = append(b.open, p)
	return nil
}

func (b *OwnedBuilder) SeqElem() error { return nil }

func (b *OwnedBuilder) SeqEnd() error {
	p, err := b.pop(KindSeq)
	if err != nil {
		return err
	}
	return b.put(OwnedSeq(p.seq...))
}

func (b *OwnedBuilder) MapBegin(hint int) error {
	p := partial{kind: KindMap}
	if hint > 0 {
		p.entries = make([]OwnedEntry, 0, min(hint, maxPrealloc))
	}
	b.open = append(b.open, p)
	return nil
}

func (b *OwnedBuilder) MapKey() error {
	if n := len(b.open); n > 0 {
		b.open[n-1].valueNow = false
	}
	return nil
}

func (b *OwnedBuilder) MapValue() error {
	if n := len(b.open); n > 0 {
		b.open[n-1].valueNow = true
	}
	return nil
}

func (b *OwnedBuilder) MapKeyBegin() error   { return b.MapKey() }
func (b *OwnedBuilder) MapValueBegin() error { return b.MapValue() }

func (b *OwnedBuilder) MapEnd() error {
	p, err := b.pop(KindMap)
	if err != nil {
		return err
	}
	return b.put(OwnedMap(p.entries...))
}

func (b *OwnedBuilder) End() error {
	if len(b.open) != 0 {
		return &Error{Code: CodeUnterminated, Message: "owned builder has open composites"}
	}
	return nil
}

func (b *OwnedBuilder) pop(kind Kind) (partial, error) {
	n := len(b.open)
	if n == 0 || b.open[n-1].kind != kind {
		return partial{}, invalidState("owned builder: unexpected " + kind.String() + " end")
	}
	p := b.open[n-1]
	b.open[n-1] = partial{}
	b.open = b.open[:n-1]
	return p, nil
}

// FromValue captures v into an Owned snapshot that is independent of v's
// storage. With a well-behaved producer the only possible failure is
// ErrDepthExceeded; producer and Fmt errors are returned as they are. A
// producer that streams nothing fails with ErrInvalidState.
func FromValue(v Value) (Owned, error) {
	var b OwnedBuilder
	if err := StreamValue(v, &b); err != nil {
		return Owned{}, err
	}
	o, ok := b.Result()
	if !ok {
		return Owned{}, invalidState("value streamed nothing")
	}
	return o, nil
}

// MustFromValue is like FromValue but panics on error.
func MustFromValue(v Value) Owned {
	o, err := FromValue(v)
	if err != nil {
		panic("valstream: " + err.Error())
	}
	return o
}
