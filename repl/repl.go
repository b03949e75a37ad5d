// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"shapegen/internal/driver"
	"shapegen/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Name is the file name diagnostics of REPL input are reported against.
const Name = "<repl>"

// Start reads items from in and writes their expansion to out. An item
// may span several lines; it is expanded once its delimiters balance
// and it ends in `}` or `;`. A blank line forces expansion of whatever
// has been typed.
func Start(ctx context.Context, in io.Reader, out io.Writer, d *driver.Driver) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder

	fmt.Fprint(out, PROMPT)
	for scanner.Scan() {
		line := scanner.Text()
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		text := pending.String()
		if strings.TrimSpace(text) == "" {
			pending.Reset()
			fmt.Fprint(out, PROMPT)
			continue
		}
		if strings.TrimSpace(line) != "" && !Complete(text) {
			fmt.Fprint(out, CONTINUATION)
			continue
		}

		pending.Reset()
		if err := expand(ctx, out, d, text); err != nil {
			return err
		}
		fmt.Fprint(out, PROMPT)
	}
	return scanner.Err()
}

// Complete reports whether text looks like one or more whole items.
func Complete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, "}") && !strings.HasSuffix(trimmed, ";") {
		return false
	}
	_, errs := parser.Read(Name, text)
	for _, err := range errs {
		if strings.HasPrefix(err.Message, "unclosed delimiter") {
			return false
		}
	}
	return true
}

func expand(ctx context.Context, out io.Writer, d *driver.Driver, text string) error {
	res, err := d.ExpandSource(ctx, Name, text)
	if err != nil {
		return err
	}
	if err := driver.Report(out, res); err != nil {
		return err
	}
	if res.Code != nil {
		_, err = out.Write(res.Code)
	}
	return err
}
