package dotgit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/refdb/plumbing"
)

// entryFlags is a bitset over a single PackedEntry, following §3's four
// independent bits.
type entryFlags uint8

const (
	// flagHasPeel means peel is a valid, previously-resolved object id.
	flagHasPeel entryFlags = 1 << iota
	// flagWasLoose means the entry originated from a loose file folded in
	// during compaction, not from the packed-refs file itself.
	flagWasLoose
	// flagCannotPeel means the pack header asserts no peel line can exist
	// for this entry (either globally, under fully-peeled, or because it
	// is a refs/tags/ entry without a peel line under peeled).
	flagCannotPeel
	// flagShadowed means a loose file with the same name hid this entry
	// during the lifetime of one iterator. Transient.
	flagShadowed
)

func (f entryFlags) has(bit entryFlags) bool { return f&bit != 0 }

// packedEntry is the cache-internal representation of a single line (plus
// optional peel line) in the packed-refs file.
type packedEntry struct {
	name  plumbing.ReferenceName
	oid   plumbing.ObjectID
	peel  plumbing.ObjectID
	flags entryFlags
}

func (e *packedEntry) hasPeel() bool     { return e.flags.has(flagHasPeel) }
func (e *packedEntry) cannotPeel() bool  { return e.flags.has(flagCannotPeel) }
func (e *packedEntry) wasLoose() bool    { return e.flags.has(flagWasLoose) }
func (e *packedEntry) isShadowed() bool  { return e.flags.has(flagShadowed) }

// toReference converts a packedEntry into the public Reference value it
// represents, including its peel if present.
func (e *packedEntry) toReference() *plumbing.Reference {
	if e.hasPeel() {
		return plumbing.NewHashReferenceWithPeel(e.name, e.oid, e.peel)
	}
	return plumbing.NewHashReference(e.name, e.oid)
}

// peelingMode describes which trait, if any, the packed-refs header
// advertised (§4.1).
type peelingMode int8

const (
	peelingNone peelingMode = iota
	peelingStandard
	peelingFull
)

const (
	headerPrefix  = "# pack-refs with:"
	traitPeeled   = "peeled"
	traitFully    = "fully-peeled"
	tagsPrefix    = "refs/tags/"
)

// parsePackedRefs parses the full packed-refs grammar of §4.1 into an
// ordered slice of entries (packed files are expected sorted by name; this
// function preserves whatever order the file is in, it does not resort).
// Any structural error fails the whole parse with ErrCorruptPackedRefs,
// consistent with §7's "fail the entire refresh" propagation policy.
func parsePackedRefs(r io.Reader) ([]*packedEntry, peelingMode, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	mode := peelingNone
	var entries []*packedEntry
	seenEntry := false

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "":
			continue
		case !seenEntry && lineNo == 1 && strings.HasPrefix(line, headerPrefix):
			mode = derivePeelingMode(line)
			continue
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "^"):
			if len(entries) == 0 {
				return nil, peelingNone, fmt.Errorf("%w: peel line %d with no preceding entry", ErrCorruptPackedRefs, lineNo)
			}

			peel, err := plumbing.FromHex(line[1:])
			if err != nil {
				return nil, peelingNone, fmt.Errorf("%w: bad peel oid on line %d", ErrCorruptPackedRefs, lineNo)
			}

			last := entries[len(entries)-1]
			last.peel = peel
			last.flags |= flagHasPeel
			last.flags &^= flagCannotPeel
		default:
			entry, err := parsePackedEntryLine(line)
			if err != nil {
				return nil, peelingNone, fmt.Errorf("%w: line %d: %v", ErrCorruptPackedRefs, lineNo, err)
			}

			entries = append(entries, entry)
			seenEntry = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, peelingNone, fmt.Errorf("%w: %v", ErrCorruptPackedRefs, err)
	}

	applyPeelingMode(entries, mode)

	return entries, mode, nil
}

func derivePeelingMode(header string) peelingMode {
	traits := strings.Fields(strings.TrimPrefix(header, headerPrefix))
	hasPeeled := false
	for _, t := range traits {
		if t == traitFully {
			return peelingFull
		}
		if t == traitPeeled {
			hasPeeled = true
		}
	}

	if hasPeeled {
		return peelingStandard
	}
	return peelingNone
}

func parsePackedEntryLine(line string) (*packedEntry, error) {
	sp := strings.IndexByte(line, ' ')
	if sp != 40 {
		return nil, fmt.Errorf("expected 40-character oid followed by a space")
	}

	oid, err := plumbing.FromHex(line[:40])
	if err != nil {
		return nil, fmt.Errorf("bad object id: %v", err)
	}

	name := line[sp+1:]
	if name == "" {
		return nil, fmt.Errorf("empty reference name")
	}

	return &packedEntry{name: plumbing.ReferenceName(name), oid: oid}, nil
}

// applyPeelingMode sets flagCannotPeel on every entry the header's trait
// asserts cannot carry a peel line, per §4.1's mode table.
func applyPeelingMode(entries []*packedEntry, mode peelingMode) {
	for _, e := range entries {
		if e.hasPeel() {
			continue
		}

		switch mode {
		case peelingFull:
			e.flags |= flagCannotPeel
		case peelingStandard:
			if strings.HasPrefix(string(e.name), tagsPrefix) {
				e.flags |= flagCannotPeel
			}
		}
	}
}

// serializePackedRefs writes entries (already sorted by name, per §6.4) in
// the on-disk packed-refs format. The header is always emitted when any
// entry carries a peel, matching the teacher's "readers tolerate both"
// contract (§4.7 step 5): writers need not emit a header to be read back
// correctly, but emitting one when peels are present keeps the file
// self-describing for other tools.
func serializePackedRefs(w io.Writer, entries []*packedEntry) error {
	bw := bufio.NewWriter(w)

	anyPeel := false
	for _, e := range entries {
		if e.hasPeel() {
			anyPeel = true
			break
		}
	}

	if anyPeel {
		if _, err := fmt.Fprintf(bw, "%s %s\n", headerPrefix, traitPeeled); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.oid, e.name); err != nil {
			return err
		}

		if e.hasPeel() {
			if _, err := fmt.Fprintf(bw, "^%s\n", e.peel); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func serializePackedRefsBytes(entries []*packedEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := serializePackedRefs(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
