package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

const (
	OUTPUT_TEXT = "text"
	OUTPUT_YAML = "yaml"
	OUTPUT_JSON = "json"
)

func CheckOutput(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "", OUTPUT_TEXT:
		return OUTPUT_TEXT, nil
	case OUTPUT_YAML, OUTPUT_JSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q", format)
}

// Marshal serializes an object in yaml or json format.
func Marshal(format string, o interface{}) ([]byte, error) {
	if format == OUTPUT_JSON {
		return json.Marshal(o)
	}
	return yaml.Marshal(o)
}

func PrintTable(w io.Writer, columnList []string, fieldList [][]string) {
	if len(fieldList) == 0 {
		fmt.Fprintf(w, "no artifact found\n")
		return
	}
	max := make([]int, len(columnList))
	for i, s := range columnList {
		max[i] = len(s)
	}
	for _, cols := range fieldList {
		for i, s := range cols {
			if max[i] < len(s) {
				max[i] = len(s)
			}
		}
	}

	f := formatString(max)
	printLine(w, columnList, f)
	for _, cols := range fieldList {
		printLine(w, cols, f)
	}
}

func printLine(w io.Writer, cols []string, msg string) {
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = c
	}
	fmt.Fprintf(w, "%s\n", strings.TrimRight(fmt.Sprintf(msg, args...), " "))
}

func formatString(max []int) string {
	msg := ""
	for _, l := range max {
		msg += fmt.Sprintf("%%-%ds ", l)
	}
	return msg[:len(msg)-1]
}
