package valstream

// StreamValue streams the structure of v into s.
//
// s is wrapped in a Driver that validates every call against a Stack, so s
// only ever sees well-formed call sequences. Once v has finished, the Driver
// checks that every sequence and map was closed and calls s.End if s
// implements EndStream. The first error, from any side, is returned
// verbatim; side effects already applied to s are not rolled back.
//
// Typical usage:
//
//	err := valstream.StreamValue(valstream.U64(42), myStream)
//	err := valstream.StreamValue(valstream.Of(map[string]int{"a": 1}), myStream)
func StreamValue(v Value, s Stream) error {
	d := newDriver(s)
	if err := d.Value(v); err != nil {
		return err
	}
	return d.end()
}

// Is reports whether v streams as a single primitive accepted by probe. It is
// the "is this a u64" pattern: probe implements only the capability it
// wants and embeds Base so everything else is rejected.
func Is(v Value, probe Stream) bool {
	return StreamValue(v, probe) == nil
}
