package termgrid

import "unicode/utf8"

// feedState names a coarse position in the escape-sequence grammar: ground,
// or one of the handful of "something is in progress" states. It exists
// purely to answer IsReady and to delimit OSC string payloads for the UTF-8
// validity check below — the actual CSI/ESC/OSC semantics (cursor motion,
// SGR, erase, scroll region, shell-integration marks, ...) are recognized
// and dispatched by the go-ansicode Decoder in the Emulator.decoder field,
// via the Handler methods in handler.go. go-ansicode exposes no hook for
// "am I mid-sequence right now", so this mirrors just the state boundary a
// caller of IsReady needs, not a second dispatcher.
type feedState uint8

const (
	feedGround feedState = iota
	feedEscape
	feedEscapeIntermediate
	feedCSI
	feedOSC
	feedDCS
	feedCharsetSelect
)

// Feed processes a chunk of PTY-style output. It both updates the ground-
// state boundary tracker (for IsReady) and hands the raw bytes to the
// go-ansicode decoder, which performs the actual parse and calls back into
// the Handler methods in handler.go. It never returns an error for
// unrecognized sequences — those are consumed and ignored by the decoder,
// per the "never treat unknown as error" rule. It returns ErrInvalidUTF8 only
// when a completed OSC string's text field turns out not to be valid UTF-8;
// bytes consumed before the failing sequence remain applied (the error-
// recovery contract).
func (e *Emulator) Feed(data []byte) error {
	err := e.trackBoundaries(data)
	if _, decErr := e.decoder.Write(data); err == nil {
		err = decErr
	}
	return err
}

// trackBoundaries advances the ground-state boundary tracker by data,
// buffering the text field of any OSC sequence it completes so its UTF-8
// validity can be checked independently of whatever the decoder itself does
// with the same bytes.
func (e *Emulator) trackBoundaries(data []byte) error {
	var err error
	i := 0
	if e.pendingEsc {
		e.pendingEsc = false
		if len(data) > 0 && data[0] == '\\' {
			if e.fstate == feedOSC {
				err = e.checkOSCValidity()
			}
			e.fstate = feedGround
			i = 1
		} else {
			e.fstate = feedGround
		}
	}

	for i < len(data) {
		b := data[i]
		switch e.fstate {
		case feedGround:
			if b == 0x1b {
				e.fstate = feedEscape
			}
		case feedEscape:
			switch {
			case b == '[':
				e.fstate = feedCSI
			case b == ']':
				e.oscBuf = e.oscBuf[:0]
				e.fstate = feedOSC
			case b == 'P' || b == 'X' || b == '^' || b == '_':
				e.fstate = feedDCS
			case b == '(' || b == ')':
				e.fstate = feedCharsetSelect
			case b >= 0x20 && b <= 0x2f:
				e.fstate = feedEscapeIntermediate
			default:
				e.fstate = feedGround
			}
		case feedEscapeIntermediate:
			if b < 0x20 || b > 0x2f {
				e.fstate = feedGround
			}
		case feedCharsetSelect:
			e.fstate = feedGround
		case feedCSI:
			if b >= 0x40 && b <= 0x7e {
				e.fstate = feedGround
			}
		case feedOSC, feedDCS:
			switch b {
			case 0x07:
				if e.fstate == feedOSC {
					if oscErr := e.checkOSCValidity(); err == nil {
						err = oscErr
					}
				}
				e.fstate = feedGround
			case 0x1b:
				if i == len(data)-1 {
					e.pendingEsc = true
					return err
				}
				if data[i+1] == '\\' {
					if e.fstate == feedOSC {
						if oscErr := e.checkOSCValidity(); err == nil {
							err = oscErr
						}
					}
					i++
				}
				e.fstate = feedGround
			default:
				if e.fstate == feedOSC {
					e.oscBuf = append(e.oscBuf, b)
				}
			}
		}
		i++
	}
	return err
}

// checkOSCValidity validates the text field (after the first ';') of the
// OSC payload just accumulated. It is the one place this engine still
// parses OSC structure itself, because go-ansicode hands SetTitle and
// ShellIntegrationMark already-decoded Go strings and gives no way to learn
// whether the source bytes were in fact valid UTF-8.
func (e *Emulator) checkOSCValidity() error {
	buf := e.oscBuf
	e.oscBuf = nil
	semi := -1
	for i, b := range buf {
		if b == ';' {
			semi = i
			break
		}
	}
	var rest []byte
	if semi >= 0 {
		rest = buf[semi+1:]
	}
	if !utf8.Valid(rest) {
		return ErrInvalidUTF8
	}
	return nil
}
