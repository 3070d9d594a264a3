package termgrid

// PromptMarkKind names which OSC 133 boundary a PromptMark records, grounded
// on the classic OSC 133 shell-integration boundary-mark concept, but
// trimmed to the row/kind/exit-code facts this engine tracks and nothing
// more — no command-text capture, no working-directory tracking.
type PromptMarkKind uint8

const (
	PromptMarkStart PromptMarkKind = iota // OSC 133;A — prompt begins
	PromptMarkInputStart                  // OSC 133;B — user input begins
	PromptMarkOutputStart                 // OSC 133;C — command output begins
	PromptMarkEnd                         // OSC 133;D — command finished
)

// PromptMark is one shell-integration boundary observed in the stream. It is
// a purely additive, non-bit-exact supplement: it never participates in
// JSON/text/HTML output and does not affect rendering.
type PromptMark struct {
	Kind     PromptMarkKind
	Row      int
	ExitCode int
}

// PromptMarks returns every shell-integration boundary observed so far, in
// the order the underlying OSC 133 sequences arrived.
func (e *Emulator) PromptMarks() []PromptMark {
	return append([]PromptMark(nil), e.promptMarks...)
}

// The OSC 133 payload itself (boundary letter plus optional exit code) is
// parsed by go-ansicode, not here — see Emulator.ShellIntegrationMark in
// handler.go, the Handler callback this type now feeds exclusively.
