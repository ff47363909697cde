/*
Package framing splits and writes end-of-message delimited streams,
where each message is followed by the "]]>]]>" token.

SplitEOM returns a bufio.SplitFunc yielding whole messages, for use
with a *bufio.Scanner. Scanning fails with io.ErrUnexpectedEOF when
input terminates other than at the end of a message.
*/
package framing
