package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/opticore/jwt"
	"gopkg.in/yaml.v3"
)

// readDocument decodes a YAML or JSON document from "path",
// "-" reads the standard input.
func readDocument(path string, stdin io.Reader) (map[string]any, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err = yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func readSignOptions(path string, stdin io.Reader) (jwt.SignOptions, error) {
	if path == "" {
		return jwt.SignOptions{}, nil
	}
	m, err := readDocument(path, stdin)
	if err != nil {
		return jwt.SignOptions{}, err
	}
	return jwt.SignOptionsFromMap(m)
}

func readVerifyOptions(path string, stdin io.Reader) (jwt.VerifyOptions, error) {
	if path == "" {
		return jwt.VerifyOptions{}, nil
	}
	m, err := readDocument(path, stdin)
	if err != nil {
		return jwt.VerifyOptions{}, err
	}
	return jwt.VerifyOptionsFromMap(m)
}

// durationFlag parses a duration flag: a literal ("15m") or a number of seconds.
func durationFlag(s string) jwt.Duration {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return jwt.Seconds(n)
	}
	return jwt.Literal(s)
}
