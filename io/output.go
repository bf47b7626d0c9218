package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteTable writes one line per point: its coordinates followed by the
// matching row of values. A header line starting with '#' names the
// columns.
func WriteTable(
	wr io.Writer, names []string, points []r3.Vec, values *mat.Dense,
) error {
	rows, cols := 0, 0
	if values != nil {
		rows, cols = values.Dims()
	}
	if rows != len(points) {
		return fmt.Errorf("%d points, but %d rows of values.",
			len(points), rows)
	} else if len(names) != cols {
		return fmt.Errorf("%d column names, but %d columns of values.",
			len(names), cols)
	}

	buf := bufio.NewWriter(wr)
	fmt.Fprintf(buf, "# x y z %s\n", strings.Join(names, " "))
	for i, p := range points {
		fmt.Fprintf(buf, "%.10g %.10g %.10g", p.X, p.Y, p.Z)
		for _, v := range values.RawRowView(i) {
			fmt.Fprintf(buf, " %.10g", v)
		}
		buf.WriteByte('\n')
	}
	return buf.Flush()
}

// WriteTableFile calls WriteTable on a newly created file.
func WriteTableFile(
	file string, names []string, points []r3.Vec, values *mat.Dense,
) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err = WriteTable(f, names, points, values); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ColumnNames returns the value column names of a potential (one
// component) or acceleration (three component) table.
func ColumnNames(components int) []string {
	if components == 3 {
		return []string{"ax", "ay", "az"}
	}
	return []string{"U"}
}
