// Package termgrid implements a headless VT/ANSI terminal emulator: feed it
// the raw bytes a PTY would produce and it maintains a screen grid plus
// unbounded scrollback, exposing the result as a bit-exact JSON document, a
// plain-text dump, or a styled HTML rendering.
//
// # Quick start
//
//	e := termgrid.New(80, 24)
//	e.Feed([]byte("\x1b[1;31mhello\x1b[0m\r\n"))
//	data, err := e.JSON(0, 0)
//
// For one-shot conversions without managing an Emulator's lifetime, use the
// stateless ToJSON/ToText/ToHTML functions instead. For a host process that
// wants to keep many terminals alive across calls, see the registry
// subpackage.
//
// # Scope
//
// This package models enough of VT100/xterm behavior to render what a
// normal shell session produces: cursor motion, scrolling regions, SGR
// styling, line wrapping, wide-character layout and a handful of
// xterm-specific OSC sequences (window title, OSC 133 shell-integration
// markers). It is not an interactive terminal: there is no PTY, no input
// handling, and no device-status-report replies.
package termgrid
