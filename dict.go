package main

// maxNameLen caps stored word names.  Longer names are silently cut when
// defined, builtin and user alike, which leaves an over-long definition
// unreachable by its full spelling.
const maxNameLen = 16

type entryKind uint8

const (
	entryBuiltin entryKind = iota
	entryUser
)

// dictEntry names either a builtin operation or a span of the definition
// arena.
type dictEntry struct {
	name string
	kind entryKind
	op   opCode

	start  int
	length int
}

// dict is the word dictionary plus the arena that user definition bodies
// occupy.  Entries only ever append; lookup scans newest first, so a
// redefinition shadows the old entry without reclaiming it.
type dict struct {
	entries []dictEntry
	arena   []byte
}

// defineBuiltin drops the registration on the floor at capacity: builtins
// register once at startup and are counted to fit.
func (d *dict) defineBuiltin(name string, op opCode) {
	if len(d.entries) == cap(d.entries) {
		return
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	d.entries = append(d.entries, dictEntry{name: name, kind: entryBuiltin, op: op})
}

func (d *dict) defineUser(name []byte, start int) error {
	if len(d.entries) == cap(d.entries) {
		return errDictionaryFull
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	d.entries = append(d.entries, dictEntry{
		name:   string(name),
		kind:   entryUser,
		start:  start,
		length: len(d.arena) - start,
	})
	return nil
}

func (d *dict) lookup(name []byte) (int, bool) {
	for i := len(d.entries) - 1; i >= 0; i-- {
		if d.entries[i].name == string(name) {
			return i, true
		}
	}
	return -1, false
}

// top is the arena write offset; a definition started now begins here.
func (d *dict) top() int { return len(d.arena) }

// rollback abandons arena content written since start.
func (d *dict) rollback(start int) { d.arena = d.arena[:start] }
