package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

func formatJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode json", err)
	}
	fmt.Println(string(out))
}

// printDocTable renders documents one row per document with one column per
// field, cells padded to the widest value in their column. Columns come from
// the fl flag when given, otherwise from the keys of the first document.
func printDocTable(docs []any, fields []string) {
	cols := fields
	if len(cols) == 0 {
		cols = docFields(docs)
	}

	if len(cols) == 0 {
		return
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}

	rows := make([][]string, 0, len(docs))

	for _, d := range docs {
		doc, ok := d.(map[string]any)
		if !ok {
			continue
		}

		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(doc[c])
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}

		rows = append(rows, row)
	}

	line := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Printf("%-*s", widths[i], c)
		}
		fmt.Println()
	}

	line(cols)

	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = strings.Repeat("-", widths[i])
	}

	line(seps)

	for _, row := range rows {
		line(row)
	}
}

// docFields lists the keys of the first document in sorted order.
func docFields(docs []any) []string {
	if len(docs) == 0 {
		return nil
	}

	doc, ok := docs[0].(map[string]any)
	if !ok {
		return nil
	}

	fields := make([]string, 0, len(doc))
	for f := range doc {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	return fields
}

// cell renders a single document value, empty for a missing field.
func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func formatQuiet(v string) {
	fmt.Println(v)
}

func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	default:
		formatJSON(v)
	}
}
