package rcierr

import (
	"encoding/xml"
	"fmt"

	"github.com/andaru/rci/xmlutil"
	"github.com/pkg/errors"
)

// Error is an RCI error element, reported inside response documents.
//
// It is marshaled as
//   <error id="..." desc="..." hint="..."/>
// and may be decoded from responses with xml.Unmarshal.
type Error struct {
	XMLName xml.Name `xml:"error" json:"-"`
	ID      string   `xml:"id,attr" json:"id"`
	Desc    string   `xml:"desc,attr" json:"desc"`
	Hint    string   `xml:"hint,attr,omitempty" json:"hint,omitempty"`
}

func (e Error) Error() string {
	s := "rci error id:" + e.ID
	if e.Desc != "" {
		s += " " + e.Desc
	}
	if e.Hint != "" {
		s += " (hint: " + e.Hint + ")"
	}
	return s
}

// XML returns the error element
func (e Error) XML() string {
	attrs := xmlutil.Attrs{{Name: "id", Value: e.ID}, {Name: "desc", Value: e.Desc}}
	return xmlutil.Tag("error", "", attrs.Add("hint", e.Hint))
}

// Catalog is a source of error descriptions by error id. Every schema
// node carries one.
type Catalog interface {
	ErrorDesc(id string) (string, bool)
}

// New returns an error element with the id, configured by opts
func New(id string, opts ...Option) *Error {
	e := &Error{ID: id}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromCatalog returns an error element with the id. If opts do not
// supply a description, it is taken from the catalog entry for id.
func FromCatalog(c Catalog, id string, opts ...Option) *Error {
	e := New(id, opts...)
	if e.Desc == "" && c != nil {
		e.Desc, _ = c.ErrorDesc(id)
	}
	return e
}

// As returns the error element found in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	var ev Error
	if errors.As(err, &ev) {
		return &ev, true
	}
	return nil, false
}

// Error ids used by the request processor
const (
	IDUnknownCommand  = "1"
	IDMalformed       = "2"
	IDOperationFailed = "3"
)

func UnknownCommand(command string, opts ...Option) *Error {
	e := &Error{ID: IDUnknownCommand, Desc: "Unknown command", Hint: command}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Malformed(opts ...Option) *Error {
	e := &Error{ID: IDMalformed, Desc: "Malformed request"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func OperationFailed(opts ...Option) *Error {
	e := &Error{ID: IDOperationFailed, Desc: "Operation failed"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QualifierError reports a request element used for attribute
// qualified addressing that has more than one child element.
type QualifierError struct {
	Element  string // Element is the offending request element's tag
	Children int    // Children is the number of child elements seen
}

func (e QualifierError) Error() string {
	return fmt.Sprintf("element <%s> has %d child elements, want at most 1 for instance addressing", e.Element, e.Children)
}

// MultiChildQualifier returns a QualifierError for element with n children
func MultiChildQualifier(element string, n int) error {
	return errors.WithStack(QualifierError{Element: element, Children: n})
}

// IsQualifierError returns the QualifierError in err's chain, if any
func IsQualifierError(err error) (QualifierError, bool) {
	var qe QualifierError
	ok := errors.As(err, &qe)
	return qe, ok
}
