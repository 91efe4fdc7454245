package resource

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Header reading errors.
var (
	ErrMalformedHeader = errors.New("malformed resource header")
	ErrStaleHeader     = errors.New("resource header is stale")
)

var (
	arrayStart     = regexp.MustCompile(`^const Uint8 resource_(\d+)\[\] =$`)
	sizeTableStart = regexp.MustCompile(`^const Uint32 ` + SizeTableSymbol + `\[(\d+)\] =$`)
	refTableStart  = regexp.MustCompile(`^const Uint8\* ` + ReferenceTableSymbol + `\[(\d+)\] =$`)
	hexLiteral     = regexp.MustCompile(`0x([0-9A-Fa-f]{2}),`)
)

// Parsed is the content read back from a generated header.
type Parsed struct {
	Arrays     [FixtureCount][]byte
	Sizes      [FixtureCount]int
	References [FixtureCount]string
}

type section int

const (
	sectionNone section = iota
	sectionArray
	sectionSizes
	sectionRefs
)

// ParseHeader reads the arrays and tables of a header produced by
// WriteHeader. Transliteration comments are ignored.
func ParseHeader(r io.Reader) (*Parsed, error) {
	p := &Parsed{}
	var (
		seenArray [FixtureCount]bool
		seenSizes bool
		seenRefs  bool
		current   section
		index     int
		entry     int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch current {
		case sectionNone:
			if m := arrayStart.FindStringSubmatch(line); m != nil {
				i, err := strconv.Atoi(m[1])
				if err != nil || i >= FixtureCount {
					return nil, fmt.Errorf("%w: line %d: unexpected array resource_%s", ErrMalformedHeader, lineNo, m[1])
				}
				if seenArray[i] {
					return nil, fmt.Errorf("%w: line %d: duplicate array resource_%d", ErrMalformedHeader, lineNo, i)
				}
				seenArray[i] = true
				p.Arrays[i] = []byte{}
				current, index = sectionArray, i
			} else if m := sizeTableStart.FindStringSubmatch(line); m != nil {
				if err := checkTableLength(m[1], lineNo); err != nil {
					return nil, err
				}
				seenSizes = true
				current, entry = sectionSizes, 0
			} else if m := refTableStart.FindStringSubmatch(line); m != nil {
				if err := checkTableLength(m[1], lineNo); err != nil {
					return nil, err
				}
				seenRefs = true
				current, entry = sectionRefs, 0
			}

		case sectionArray:
			if line == "{" {
				continue
			}
			if line == "};" {
				current = sectionNone
				continue
			}
			if i := strings.Index(line, "//"); i >= 0 {
				line = line[:i]
			}
			for _, m := range hexLiteral.FindAllStringSubmatch(line, -1) {
				v, _ := strconv.ParseUint(m[1], 16, 8)
				p.Arrays[index] = append(p.Arrays[index], byte(v))
			}

		case sectionSizes, sectionRefs:
			if line == "{" {
				continue
			}
			if line == "};" {
				if entry != FixtureCount {
					return nil, fmt.Errorf("%w: line %d: table has %d entries, want %d", ErrMalformedHeader, lineNo, entry, FixtureCount)
				}
				current = sectionNone
				continue
			}
			if entry >= FixtureCount {
				return nil, fmt.Errorf("%w: line %d: too many table entries", ErrMalformedHeader, lineNo)
			}
			value := strings.TrimSuffix(line, ",")
			if current == sectionSizes {
				size, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: bad size %q", ErrMalformedHeader, lineNo, value)
				}
				p.Sizes[entry] = size
			} else {
				p.References[entry] = value
			}
			entry++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if current != sectionNone {
		return nil, fmt.Errorf("%w: unterminated block at end of input", ErrMalformedHeader)
	}
	for i, seen := range seenArray {
		if !seen {
			return nil, fmt.Errorf("%w: missing array resource_%d", ErrMalformedHeader, i)
		}
	}
	if !seenSizes {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedHeader, SizeTableSymbol)
	}
	if !seenRefs {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedHeader, ReferenceTableSymbol)
	}

	for i := 0; i < FixtureCount; i++ {
		if p.Sizes[i] != len(p.Arrays[i]) {
			return nil, fmt.Errorf("%w: %s[%d] = %d but resource_%d has %d elements",
				ErrMalformedHeader, SizeTableSymbol, i, p.Sizes[i], i, len(p.Arrays[i]))
		}
		if want := fmt.Sprintf("resource_%d", i); p.References[i] != want {
			return nil, fmt.Errorf("%w: %s[%d] = %s, want %s",
				ErrMalformedHeader, ReferenceTableSymbol, i, p.References[i], want)
		}
	}

	return p, nil
}

func checkTableLength(s string, lineNo int) error {
	n, err := strconv.Atoi(s)
	if err != nil || n != FixtureCount {
		return fmt.Errorf("%w: line %d: table length %s, want %d", ErrMalformedHeader, lineNo, s, FixtureCount)
	}
	return nil
}

// Verify reports whether the parsed header still matches the fixtures in set.
func (p *Parsed) Verify(set *Set) error {
	for i, f := range set.fixtures {
		if p.Sizes[i] != len(f.Data) {
			return fmt.Errorf("%w: %s is %d bytes, header has %d", ErrStaleHeader, f.Name, len(f.Data), p.Sizes[i])
		}
		if !bytes.Equal(p.Arrays[i], f.Data) {
			return fmt.Errorf("%w: %s content differs", ErrStaleHeader, f.Name)
		}
	}
	return nil
}
