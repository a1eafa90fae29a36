// Package formatter renders match results as human-readable text.
package formatter

import (
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/treepat/treepat/match"
)

var (
	templateStyle = color.New(color.FgYellow, color.Bold)
	fileStyle     = color.New(color.FgCyan, color.Bold)
	keyStyle      = color.New(color.FgGreen, color.Bold)
	headerStyle   = color.New(color.FgHiBlue, color.Bold)
)

// Format renders the results grouped by file, with capture bindings
// listed in sorted order so output is stable.
func Format(results []match.Result) string {
	byFile := make(map[string][]match.Result)
	for _, r := range results {
		byFile[r.Filename] = append(byFile[r.Filename], r)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	var builder strings.Builder
	for _, file := range files {
		builder.WriteString(fileStyle.Sprint(file) + "\n")
		for _, r := range byFile[file] {
			writeResult(&builder, r)
		}
	}
	return builder.String()
}

func writeResult(builder *strings.Builder, r match.Result) {
	builder.WriteString("  " + templateStyle.Sprint(r.Template))
	builder.WriteString(": " + r.Root.String() + "\n")

	writeNodeBindings(builder, "params", paramKeys(r.Params), func(k string) string {
		return r.Params[k].String()
	})
	writeNodeBindings(builder, "substitutions", paramKeys(r.Substitutions), func(k string) string {
		return r.Substitutions[k].String()
	})
	writeNodeBindings(builder, "type vars", paramKeys(r.TypeVars), func(k string) string {
		return r.TypeVars[k]
	})
}

func writeNodeBindings(builder *strings.Builder, header string, keys []string, value func(string) string) {
	if len(keys) == 0 {
		return
	}
	builder.WriteString("    " + headerStyle.Sprint(header) + ":\n")
	for _, k := range keys {
		builder.WriteString("      " + keyStyle.Sprint(k) + " = " + value(k) + "\n")
	}
}

func paramKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
