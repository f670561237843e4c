package graphql

import (
	"fmt"
	"strings"
)

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a response's errors array.
type Error struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Path      []any      `json:"path,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) locationText() string {
	parts := make([]string, 0, len(e.Locations))
	for _, l := range e.Locations {
		parts = append(parts, fmt.Sprintf("%d:%d", l.Line, l.Column))
	}
	return strings.Join(parts, ",")
}

func (e Error) pathText() string {
	parts := make([]string, 0, len(e.Path))
	for _, p := range e.Path {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// Errors is the errors array of a response.
type Errors []Error

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "graphql: no errors"
	case 1:
		return "graphql: " + es[0].Message
	}
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return fmt.Sprintf("graphql: %d errors: %s", len(es), strings.Join(msgs, "; "))
}
