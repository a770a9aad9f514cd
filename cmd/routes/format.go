package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// printer renders command output as a table or JSON.
type printer struct {
	out   io.Writer
	json  bool
	color bool
}

func (p *printer) JSON(data any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (p *printer) Table(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)

	head := make([]string, len(headers))
	for i, h := range headers {
		head[i] = strings.ToUpper(h)
		if p.color {
			head[i] = color.New(color.Bold).Sprint(head[i])
		}
	}
	if _, err := fmt.Fprintln(w, strings.Join(head, "\t")); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (p *printer) Summary(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.color {
		_, err := color.New(color.FgGreen).Fprintln(p.out, msg)
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

func (p *printer) Failure(w io.Writer, err error) {
	if p.color {
		color.New(color.FgRed).Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintln(w, "error:", err)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
