package framing

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEOM(t *testing.T) {
	for _, tc := range []struct {
		input  string
		want   []string
		err    error
		wantCB int
	}{
		{},
		{input: "  \n", want: nil},
		{input: "]]>]]>", want: []string{""}, wantCB: 1},
		{input: "foo]]>]]>", want: []string{"foo"}, wantCB: 1},
		{input: "foo]]>]]>\n", want: []string{"foo"}, wantCB: 1},
		{input: "foo]]>]]>bar]]>]]>bazoopa]]>]]>", want: []string{"foo", "bar", "bazoopa"}, wantCB: 3},
		{input: "]]>]]foo]]>]]>bar]]]>]]>", want: []string{"]]>]]foo", "bar]"}, wantCB: 2},
		{input: "foo>]]>bar]]>]]>", want: []string{"foo>]]>bar"}, wantCB: 1},
		{input: "]]>]]>]]>]]>baz]]>]]>", want: []string{"", "", "baz"}, wantCB: 3},
		{
			input:  "<rci_request>\n  <query_state/>\n</rci_request>\n]]>]]>\n<rci_request/>]]>]]>",
			want:   []string{"<rci_request>\n  <query_state/>\n</rci_request>\n", "\n<rci_request/>"},
			wantCB: 2,
		},
		{input: "foo", err: io.ErrUnexpectedEOF},
		{input: "foo]]>]]>bar", want: []string{"foo"}, err: io.ErrUnexpectedEOF, wantCB: 1},
		{input: "a]]>]]>b]]>]]", want: []string{"a"}, err: io.ErrUnexpectedEOF, wantCB: 1},
	} {
		for bsize := 16; bsize < 65; bsize += 7 {
			t.Run(fmt.Sprintf("%q/%d", tc.input, bsize), func(t *testing.T) {
				check := assert.New(t)
				scanner := bufio.NewScanner(strings.NewReader(tc.input))
				scanner.Buffer(make([]byte, bsize), bsize*4)
				var gotCB int
				scanner.Split(SplitEOM(func() { gotCB++ }))
				var got []string
				for scanner.Scan() {
					got = append(got, scanner.Text())
				}
				check.True(errors.Is(scanner.Err(), tc.err) || scanner.Err() == tc.err, "got error %v, want %v", scanner.Err(), tc.err)
				check.Equal(tc.want, got)
				check.Equal(tc.wantCB, gotCB)
			})
		}
	}
}

func TestSplitEOMNilCallback(t *testing.T) {
	check := assert.New(t)
	scanner := bufio.NewScanner(strings.NewReader("a]]>]]>b]]>]]>"))
	scanner.Split(SplitEOM(nil))
	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	check.NoError(scanner.Err())
	check.Equal([]string{"a", "b"}, got)
}

type failWriter struct{ after int }

func (w *failWriter) Write(b []byte) (int, error) {
	if w.after == 0 {
		return 0, io.ErrClosedPipe
	}
	w.after--
	return len(b), nil
}

func TestWriteMessage(t *testing.T) {
	check := assert.New(t)
	var buf bytes.Buffer
	check.NoError(WriteMessage(&buf, []byte("<rci_reply/>")))
	check.NoError(WriteMessage(&buf, nil))
	check.Equal("<rci_reply/>]]>]]>]]>]]>", buf.String())

	check.Equal(io.ErrClosedPipe, WriteMessage(&failWriter{}, []byte("x")))
	check.Equal(io.ErrClosedPipe, WriteMessage(&failWriter{after: 1}, []byte("x")))
}
