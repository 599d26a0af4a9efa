package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// console writes status lines for devtool commands. Colour is dropped when
// NO_COLOR is set so output stays readable in CI logs.
type console struct {
	w     io.Writer
	color bool
}

var stdout = newConsole(os.Stdout, os.Getenv("NO_COLOR") == "")

func newConsole(w io.Writer, color bool) *console {
	return &console{w: w, color: color}
}

func (c *console) line(color, marker, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if marker != "" {
		msg = marker + " " + msg
	}
	if c.color {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(c.w, msg)
}

func (c *console) header(title string) {
	fmt.Fprintln(c.w)
	c.line(colorYellow, "", "=== %s ===", title)
}

func PrintInfo(format string, a ...any)    { stdout.line(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...any) { stdout.line(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...any) { stdout.line(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...any)   { stdout.line(colorRed, "✗", format, a...) }
func PrintHeader(title string)             { stdout.header(title) }
