package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// printText renders data as sorted key: value lines, lists as one
// entry per line
func (o *Output) printText(data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		fmt.Printf("%+v\n", data)
		return
	}

	var asList []map[string]any
	if err := json.Unmarshal(raw, &asList); err == nil {
		for i, item := range asList {
			if i > 0 {
				fmt.Println()
			}
			printFields(item)
		}
		return
	}

	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		printFields(asMap)
		return
	}

	fmt.Println(string(raw))
}

func printFields(fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := fields[k]
		if nested, ok := v.(map[string]any); ok {
			data, _ := json.Marshal(nested)
			v = string(data)
		}
		if nested, ok := v.([]any); ok {
			data, _ := json.Marshal(nested)
			v = string(data)
		}
		fmt.Printf("%s: %v\n", k, v)
	}
}
