package framing

import (
	"bufio"
	"bytes"
	"io"
)

// EOM is the message termination token
const EOM = "]]>]]>"

var tokenEOM = []byte(EOM)

// SplitEOM returns a bufio.SplitFunc yielding each message of an
// end-of-message delimited stream, without the token. Whitespace
// after the last message is ignored.
//
// endOfMessage, if not nil, is called at the end of each message.
func SplitEOM(endOfMessage func()) bufio.SplitFunc {
	return func(b []byte, atEOF bool) (advance int, token []byte, err error) {
		if idx := bytes.Index(b, tokenEOM); idx > -1 {
			if endOfMessage != nil {
				endOfMessage()
			}
			return idx + len(tokenEOM), b[:idx], nil
		}
		if !atEOF {
			// request more data
			return 0, nil, nil
		}
		if len(bytes.TrimSpace(b)) > 0 {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return len(b), nil, nil
	}
}

// WriteMessage writes msg followed by the end-of-message token to w
func WriteMessage(w io.Writer, msg []byte) error {
	if _, err := w.Write(msg); err != nil {
		return err
	}
	_, err := w.Write(tokenEOM)
	return err
}
