package view

import (
	"fmt"
	"io"
	"sort"

	"github.com/logrusorgru/aurora"
)

// WriteSummary prints the titled key/value listing, keys sorted.
// Meant for the normal screen, after the surface is closed.
func WriteSummary(w io.Writer, title string, d map[string]interface{}) {
	fmt.Fprintln(w, aurora.Bold(title))
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(w, "  %s: %v\n", aurora.Green(propName), d[propName])
	}
}
