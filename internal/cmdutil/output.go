package cmdutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// parseTag parses a struct field's tag and returns it tokens in a map.
// The returned map will contain at least the key "name". If the tag is
// empty, its value will be fieldName.
func parseTag(fieldName string, tag string) map[string]string {
	m := make(map[string]string)
	if tag == "" {
		m["name"] = fieldName
		return m
	}
	tt := strings.Split(tag, ",")
	m["name"] = tt[0]
	for i := 1; i < len(tt); i++ {
		if tt[i] == "omitempty" {
			m["omitempty"] = "omitempty"
		}
	}
	return m
}

// StructToTabwriter takes any struct s and produces a formatted text output
// using the tabwriter tw. The fields in struct s to render must be tagged
// properly with a "text" tag, and they must be exported. Map fields are
// rendered one key per line, sorted.
//
// This function will not flush the tabwriter's writer, so the caller is
// expected to do that after this function returns.
func StructToTabwriter(s any, tw *tabwriter.Writer) error {
	t := reflect.TypeOf(s)
	v := reflect.ValueOf(s)
	if t.Kind() == reflect.Pointer {
		t = v.Elem().Type()
		v = v.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", t.Kind())
	}
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		s := t.Field(i).Tag.Get("text")
		if s == "" {
			continue
		}
		tag := parseTag(t.Field(i).Name, s)
		f := v.Field(i)
		if tag["omitempty"] != "" && f.IsZero() {
			continue
		}
		if f.Kind() == reflect.Map {
			fmt.Fprintf(tw, "%s:\t\n", tag["name"])
			keys := f.MapKeys()
			sortValues(keys)
			for _, k := range keys {
				fmt.Fprintf(tw, "  %v:\t%v\n", k.Interface(), f.MapIndex(k).Interface())
			}
			continue
		}
		fmt.Fprintf(tw, "%s:\t%v\n", tag["name"], f.Interface())
	}
	return nil
}

func sortValues(values []reflect.Value) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && fmt.Sprint(values[j].Interface()) < fmt.Sprint(values[j-1].Interface()); j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}

// MarshalStruct marshals any tagged struct in the output format given.
// Formats supported are json, yaml and text. Struct fields to be
// marshaled must be exported and properly tagged.
func MarshalStruct(s any, outputFormat string) ([]byte, error) {
	var out []byte
	var err error
	switch strings.ToLower(outputFormat) {
	case "json":
		out, err = json.MarshalIndent(s, "", " ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(s)
	case "text":
		bb := &bytes.Buffer{}
		tw := tabwriter.NewWriter(bb, 0, 0, 2, ' ', 0)
		err = StructToTabwriter(s, tw)
		tw.Flush()
		out = bb.Bytes()
	default:
		err = fmt.Errorf("unknown output format: %s", outputFormat)
	}
	return out, err
}

// exit is replaced in tests.
var exit = os.Exit

// FatalWithExitCode prints msg to the standard error and exits with code.
func FatalWithExitCode(code int, msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "[FATAL]: ")
	fmt.Fprintf(os.Stderr, msg, args...)
	fmt.Fprintf(os.Stderr, "\n")
	exit(code)
}
