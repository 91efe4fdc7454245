// Package resource embeds the DDS codec test fixtures into a C++ header.
package resource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FixtureCount is the number of fixtures every header carries.
const FixtureCount = 15

// FixtureNames lists the fixture files in emission order.
var FixtureNames = [FixtureCount]string{
	"test0.dds",
	"test1.dds",
	"test2.dds",
	"test3.dds",
	"test4.dds",
	"test5.dds",
	"test6.dds",
	"test7.dds",
	"test8.dds",
	"test9.dds",
	"test10.dds",
	"test11.dds",
	"test12.dds",
	"test13.dds",
	"test14.dds",
}

// Fixture loading errors.
var (
	ErrFixtureUnavailable = errors.New("fixture unavailable")
	ErrFixtureNotFound    = fmt.Errorf("%w: not found", ErrFixtureUnavailable)
)

// Fixture is one input file and its raw content.
type Fixture struct {
	Index int
	Name  string
	Data  []byte
}

// Symbol returns the C++ identifier of the fixture's array.
func (f Fixture) Symbol() string {
	return fmt.Sprintf("resource_%d", f.Index)
}

// Set holds all fixtures in index order.
type Set struct {
	dir      string
	fixtures [FixtureCount]Fixture
}

// LoadFixtures reads every fixture from dir. The first file that cannot be
// read aborts the load.
func LoadFixtures(dir string) (*Set, error) {
	set := &Set{dir: dir}

	for i, path := range FixturePaths(dir) {
		data, err := readFixture(path)
		if err != nil {
			return nil, err
		}
		set.fixtures[i] = Fixture{Index: i, Name: FixtureNames[i], Data: data}
	}

	return set, nil
}

// NewSet builds a set from in-memory contents, indexed like FixtureNames.
func NewSet(contents [FixtureCount][]byte) *Set {
	set := &Set{}
	for i, data := range contents {
		if data == nil {
			data = []byte{}
		}
		set.fixtures[i] = Fixture{Index: i, Name: FixtureNames[i], Data: data}
	}
	return set
}

func readFixture(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFixtureNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFixtureUnavailable, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFixtureUnavailable, path, err)
	}
	return data, nil
}

// Dir returns the directory the set was loaded from ("" for in-memory sets).
func (s *Set) Dir() string {
	return s.dir
}

// Fixture returns the fixture at index i.
func (s *Set) Fixture(i int) Fixture {
	return s.fixtures[i]
}

// Fixtures returns all fixtures in index order.
func (s *Set) Fixtures() []Fixture {
	out := make([]Fixture, FixtureCount)
	copy(out, s.fixtures[:])
	return out
}

// Sizes returns the byte length of every fixture.
func (s *Set) Sizes() [FixtureCount]int {
	var sizes [FixtureCount]int
	for i, f := range s.fixtures {
		sizes[i] = len(f.Data)
	}
	return sizes
}

// Paths returns the file path of every fixture.
func (s *Set) Paths() []string {
	return FixturePaths(s.dir)
}

// FixturePaths returns the path of every fixture under dir.
func FixturePaths(dir string) []string {
	paths := make([]string, FixtureCount)
	for i, name := range FixtureNames {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// IsFixtureName reports whether name is one of the fixture files.
func IsFixtureName(name string) bool {
	for _, n := range FixtureNames {
		if n == name {
			return true
		}
	}
	return false
}
