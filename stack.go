package valstream

import "strconv"

// MaxDepth is the maximum number of sequences and maps that may be open at
// once. It is part of the contract: producers nesting deeper than this fail
// with ErrDepthExceeded.
const MaxDepth = 16

// Pos describes where the most recently completed item sat relative to its
// parent.
type Pos uint8

const (
	PosRoot  Pos = iota // The top-level value.
	PosElem             // An element of a sequence.
	PosKey              // A key of a map.
	PosValue            // A value of a map.
)

func (p Pos) IsRoot() bool  { return p == PosRoot }
func (p Pos) IsElem() bool  { return p == PosElem }
func (p Pos) IsKey() bool   { return p == PosKey }
func (p Pos) IsValue() bool { return p == PosValue }

func (p Pos) String() string {
	switch p {
	case PosRoot:
		return "root"
	case PosElem:
		return "elem"
	case PosKey:
		return "key"
	case PosValue:
		return "value"
	default:
		return "unknown"
	}
}

// slot is the state of one open frame.
type slot uint8

const (
	slotSeq          slot = iota // sequence: awaiting SeqElem or SeqEnd
	slotSeqElem                  // sequence: element announced, item pending
	slotMapKeyWait               // map: awaiting MapKey or MapEnd
	slotMapKey                   // map: key announced, item pending
	slotMapValueWait             // map: key done, awaiting MapValue
	slotMapValue                 // map: value announced, item pending
)

// Stack validates the nesting of a stream of calls with a fixed-capacity
// frame array. The zero value is an empty stack ready for use; it never
// allocates.
//
// Item calls (Primitive, SeqBegin, MapBegin) and the matching end calls
// return the Pos the item occupies in its parent, which consumers use for
// delimiter decisions.
type Stack struct {
	frames   [MaxDepth]slot
	depth    int
	rootDone bool
}

// Depth returns the number of open sequences and maps.
func (s *Stack) Depth() int { return s.depth }

// Clear resets the stack so it can validate another value.
func (s *Stack) Clear() {
	s.depth = 0
	s.rootDone = false
}

// Primitive validates a primitive item at the current position.
func (s *Stack) Primitive() (Pos, error) {
	pos, err := s.item()
	if err != nil {
		return pos, err
	}
	s.complete()
	return pos, nil
}

// SeqBegin opens a sequence at the current position.
func (s *Stack) SeqBegin() (Pos, error) { return s.push(slotSeq) }

// SeqElem announces the next element of the open sequence.
func (s *Stack) SeqElem() error {
	top, err := s.top("seq_elem")
	if err != nil {
		return err
	}
	if *top != slotSeq {
		return s.unexpected("seq_elem", *top)
	}
	*top = slotSeqElem
	return nil
}

// SeqEnd closes the open sequence.
func (s *Stack) SeqEnd() (Pos, error) { return s.pop("seq_end", slotSeq) }

// MapBegin opens a map at the current position.
func (s *Stack) MapBegin() (Pos, error) { return s.push(slotMapKeyWait) }

// MapKey announces the next key of the open map.
func (s *Stack) MapKey() error {
	top, err := s.top("map_key")
	if err != nil {
		return err
	}
	if *top != slotMapKeyWait {
		return s.unexpected("map_key", *top)
	}
	*top = slotMapKey
	return nil
}

// MapValue announces the value for the key just completed.
func (s *Stack) MapValue() error {
	top, err := s.top("map_value")
	if err != nil {
		return err
	}
	if *top != slotMapValueWait {
		return s.unexpected("map_value", *top)
	}
	*top = slotMapValue
	return nil
}

// MapEnd closes the open map. It fails when a key is left without a value.
func (s *Stack) MapEnd() (Pos, error) { return s.pop("map_end", slotMapKeyWait) }

// End checks that every sequence and map has been closed.
func (s *Stack) End() error {
	if s.depth != 0 {
		return &Error{Code: CodeUnterminated, Message: "end called with " + strconv.Itoa(s.depth) + " open frame(s)"}
	}
	return nil
}

// item returns the position of an item starting now, without changing state.
func (s *Stack) item() (Pos, error) {
	if s.depth == 0 {
		if s.rootDone {
			return PosRoot, invalidState("root value already completed")
		}
		return PosRoot, nil
	}
	switch st := s.frames[s.depth-1]; st {
	case slotSeqElem:
		return PosElem, nil
	case slotMapKey:
		return PosKey, nil
	case slotMapValue:
		return PosValue, nil
	default:
		return PosRoot, invalidState("item without " + announcement(st))
	}
}

// complete marks the pending item of the top frame as done.
func (s *Stack) complete() {
	if s.depth == 0 {
		s.rootDone = true
		return
	}
	top := &s.frames[s.depth-1]
	switch *top {
	case slotSeqElem:
		*top = slotSeq
	case slotMapKey:
		*top = slotMapValueWait
	case slotMapValue:
		*top = slotMapKeyWait
	}
}

func (s *Stack) push(st slot) (Pos, error) {
	pos, err := s.item()
	if err != nil {
		return pos, err
	}
	if s.depth == MaxDepth {
		return pos, &Error{Code: CodeDepthExceeded, Message: "nesting deeper than " + strconv.Itoa(MaxDepth)}
	}
	s.frames[s.depth] = st
	s.depth++
	return pos, nil
}

func (s *Stack) pop(call string, want slot) (Pos, error) {
	top, err := s.top(call)
	if err != nil {
		return PosRoot, err
	}
	if *top != want {
		return PosRoot, s.unexpected(call, *top)
	}
	s.depth--
	// The parent still records the item the frame occupied.
	pos, _ := s.item()
	s.complete()
	return pos, nil
}

func (s *Stack) top(call string) (*slot, error) {
	if s.depth == 0 {
		return nil, invalidState(call + " outside of any sequence or map")
	}
	return &s.frames[s.depth-1], nil
}

func (s *Stack) unexpected(call string, st slot) error {
	return invalidState(call + " while " + describe(st))
}

func describe(st slot) string {
	switch st {
	case slotSeq:
		return "awaiting a sequence element"
	case slotSeqElem:
		return "a sequence element is pending"
	case slotMapKeyWait:
		return "awaiting a map key"
	case slotMapKey:
		return "a map key is pending"
	case slotMapValueWait:
		return "awaiting a map value"
	case slotMapValue:
		return "a map value is pending"
	default:
		return "in an unknown state"
	}
}

func announcement(st slot) string {
	switch st {
	case slotSeq:
		return "seq_elem"
	case slotMapKeyWait:
		return "map_key"
	case slotMapValueWait:
		return "map_value"
	default:
		return "announcement"
	}
}
