package main

import (
	"fmt"
	"strings"
)

// DebugOverlay collects short status fragments each frame. The demo has no
// text rendering, so the joined result goes into the window title instead.
type DebugOverlay struct {
	lines []string
}

func (do *DebugOverlay) AddLine(format string, args ...interface{}) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

// Title joins the collected fragments into a single title-bar line.
func (do *DebugOverlay) Title() string {
	return strings.Join(do.lines, " | ")
}
