package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	JSON = "json"
	EDN  = "edn"
	Text = "text"
)

// Valid reports whether f names a supported output format.
func Valid(f string) bool {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "", JSON, EDN, Text:
		return true
	}
	return false
}

// Write writes v in the requested format: json (default), edn or text.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	case Text:
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want json|edn|text)", format)
	}
}

// WriteJSON writes one JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
	} else {
		b, err = sonic.ConfigStd.Marshal(v)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
