package resource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Options controls the boilerplate around the generated arrays.
type Options struct {
	Tool          string
	FileName      string
	Author        string
	Copyright     string
	Guard         string
	Prerequisites string
	Namespace     string
}

// DefaultOptions returns the boilerplate of resourcedata.hpp.
func DefaultOptions() Options {
	return Options{
		Tool:          "resourcegen",
		FileName:      "resourcedata.hpp",
		Author:        "2010-2012  Daniel Jungmann <el.3d.source@gmail.com>",
		Copyright:     "See COPYING file that comes with this distribution",
		Guard:         "_RESOURCEDATA_HPP_",
		Prerequisites: "prerequisites.hpp",
		Namespace:     "eternal_lands",
	}
}

// Table symbols.
const (
	SizeTableSymbol      = "resource_sizes"
	ReferenceTableSymbol = "resources"
)

// Render writes the header for set into memory.
func Render(set *Set, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, set, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHeader writes the complete header for set to w.
func WriteHeader(w io.Writer, set *Set, opts Options) error {
	bw := bufio.NewWriter(w)

	writePreamble(bw, opts)

	for _, f := range set.fixtures {
		writeArray(bw, f)
	}

	writeSizeTable(bw, set)
	writeReferenceTable(bw, set)

	fmt.Fprintf(bw, "}\n\n")
	fmt.Fprintf(bw, "#endif\t/* %s */\n", opts.Guard)

	return bw.Flush()
}

func writePreamble(w io.Writer, opts Options) {
	rule := strings.Repeat("*", 76)

	fmt.Fprintf(w, "/%s\n", rule)
	fmt.Fprintf(w, " *            %s\n", opts.FileName)
	fmt.Fprintf(w, " *\n")
	fmt.Fprintf(w, " * Generated by %s, do not edit.\n", opts.Tool)
	fmt.Fprintf(w, " *\n")
	fmt.Fprintf(w, " * Author: %s\n", opts.Author)
	fmt.Fprintf(w, " * Copyright: %s\n", opts.Copyright)
	fmt.Fprintf(w, " %s/\n\n", rule)

	fmt.Fprintf(w, "#ifndef\t%s\n", opts.Guard)
	fmt.Fprintf(w, "#define\t%s\n\n", opts.Guard)

	fmt.Fprintf(w, "#ifndef\t__cplusplus\n")
	fmt.Fprintf(w, "#error\t\"Including C++ header in C translation unit!\"\n")
	fmt.Fprintf(w, "#endif\t/* __cplusplus */\n\n")

	fmt.Fprintf(w, "#include \"%s\"\n\n", opts.Prerequisites)

	fmt.Fprintf(w, "namespace %s\n{\n\n", opts.Namespace)
}

func writeArray(w io.Writer, f Fixture) {
	fmt.Fprintf(w, "\t/* %s */\n", f.Name)
	fmt.Fprintf(w, "\tconst Uint8 %s[] =\n\t{\n", f.Symbol())
	for _, row := range Rows(f.Data) {
		fmt.Fprintf(w, "\t\t%s\n", row)
	}
	fmt.Fprintf(w, "\t};\n\n")
}

func writeSizeTable(w io.Writer, set *Set) {
	fmt.Fprintf(w, "\tconst Uint32 %s[%d] =\n\t{\n", SizeTableSymbol, FixtureCount)
	for i, size := range set.Sizes() {
		fmt.Fprintf(w, "\t\t%d%s\n", size, separator(i))
	}
	fmt.Fprintf(w, "\t};\n\n")
}

func writeReferenceTable(w io.Writer, set *Set) {
	fmt.Fprintf(w, "\tconst Uint8* %s[%d] =\n\t{\n", ReferenceTableSymbol, FixtureCount)
	for i, f := range set.fixtures {
		fmt.Fprintf(w, "\t\t%s%s\n", f.Symbol(), separator(i))
	}
	fmt.Fprintf(w, "\t};\n\n")
}

func separator(i int) string {
	if i < FixtureCount-1 {
		return ","
	}
	return ""
}
