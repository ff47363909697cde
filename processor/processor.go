package processor

import (
	"bufio"
	"io"
	"strings"

	"github.com/andaru/rci/descriptor"
	"github.com/andaru/rci/dispatch"
	"github.com/andaru/rci/framing"
	"github.com/andaru/rci/rcierr"
	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// RCI commands
const (
	CommandQueryDescriptor = "query_descriptor"
	CommandQuerySetting    = "query_setting"
	CommandQueryState      = "query_state"
	CommandSetSetting      = "set_setting"
	CommandDoCommand       = "do_command"
)

// Version is the protocol version written on replies
const Version = "1.1"

// maxMessage is the largest request accepted by Serve
const maxMessage = 1 << 20

var (
	xpRequest  = xpath.MustCompile(`/rci_request`)
	xpCommands = xpath.MustCompile(`/rci_request/*`)
)

// Option is a Processor option function
type Option func(*Processor)

// WithDispatcher sets the Dispatcher used to answer commands
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(p *Processor) { p.dispatcher = d }
}

// Processor answers rci_request documents
type Processor struct {
	root        *schema.Branch
	dispatcher  *dispatch.Dispatcher
	descriptors *descriptor.Builder
}

// New returns a Processor serving the schema tree root
func New(root *schema.Branch, opts ...Option) *Processor {
	p := &Processor{root: root, descriptors: descriptor.New(root)}
	for _, opt := range opts {
		opt(p)
	}
	if p.dispatcher == nil {
		p.dispatcher = dispatch.New()
	}
	return p
}

// Process reads one rci_request document from r and returns the
// rci_reply. An error is returned only if r does not hold a request.
func (p *Processor) Process(r io.Reader) (string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if xmlquery.QuerySelector(doc, xpRequest) == nil {
		return "", errors.New("missing <rci_request> element")
	}
	var body strings.Builder
	for _, n := range xmlquery.QuerySelectorAll(doc, xpCommands) {
		body.WriteString(p.command(xmlutil.Wrap(n)))
	}
	return Reply(body.String()), nil
}

// Reply returns body wrapped in an rci_reply element
func Reply(body string) string {
	return xmlutil.Tag("rci_reply", body, xmlutil.Attrs{{Name: "version", Value: Version}})
}

// ErrorReply returns a reply holding only err, as an RCI error element
func ErrorReply(err error) string {
	return Reply(toError(err).XML())
}

// Serve answers each end-of-message delimited request read from r,
// writing each reply followed by the end-of-message token to w. A
// request that cannot be read is answered with an error reply.
func (p *Processor) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxMessage)
	scanner.Split(framing.SplitEOM(nil))
	for scanner.Scan() {
		msg := scanner.Text()
		if strings.TrimSpace(msg) == "" {
			continue
		}
		reply, err := p.Process(strings.NewReader(msg))
		if err != nil {
			glog.Warningf("processor: bad request: %v", err)
			reply = ErrorReply(rcierr.Malformed(rcierr.WithHint(err.Error())))
		}
		if err := framing.WriteMessage(w, []byte(reply)); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(scanner.Err())
}

func (p *Processor) command(cmd xmlutil.Element) string {
	glog.V(1).Infof("processor: %s", cmd.Tag())
	var (
		out string
		err error
	)
	switch cmd.Tag() {
	case CommandQueryDescriptor:
		out, err = p.queryDescriptor(cmd)
	case CommandQuerySetting, CommandQueryState:
		out, err = p.query(cmd)
	case CommandSetSetting:
		out, err = p.setSetting(cmd)
	case CommandDoCommand:
		out, err = p.doCommand(cmd)
	default:
		err = rcierr.UnknownCommand(cmd.Tag())
	}
	if err != nil {
		return xmlutil.Tag(cmd.Tag(), toError(err).XML(), nil)
	}
	return out
}

func (p *Processor) queryDescriptor(cmd xmlutil.Element) (string, error) {
	groups := cmd.Children()
	if len(groups) == 0 {
		return xmlutil.Tag(cmd.Tag(), p.descriptors.Document(), nil), nil
	}
	var body strings.Builder
	for _, g := range groups {
		group, ok := p.root.Get(g.Tag())
		if !ok {
			return "", rcierr.UnknownCommand(g.Tag())
		}
		body.WriteString(p.descriptors.Node(group))
	}
	return xmlutil.Tag(cmd.Tag(), body.String(), nil), nil
}

func (p *Processor) query(cmd xmlutil.Element) (string, error) {
	group, ok := p.root.Get(cmd.Tag())
	if !ok {
		return "", rcierr.UnknownCommand(cmd.Tag())
	}
	return p.dispatcher.Handle(group, cmd)
}

func (p *Processor) setSetting(cmd xmlutil.Element) (string, error) {
	group, err := p.group(CommandQuerySetting)
	if err != nil {
		return "", err
	}
	out, err := p.dispatcher.Set(group, cmd)
	if err != nil {
		return "", err
	}
	return xmlutil.Tag(cmd.Tag(), out, nil), nil
}

func (p *Processor) doCommand(cmd xmlutil.Element) (string, error) {
	name, ok := cmd.Attrs()["target"]
	if !ok || name == "" {
		return "", rcierr.Malformed(rcierr.WithHint("missing target attribute"))
	}
	group, err := p.group(CommandDoCommand)
	if err != nil {
		return "", err
	}
	n, ok := group.Get(name)
	if !ok {
		return "", rcierr.UnknownCommand(name)
	}
	if _, ok := n.(*schema.Target); !ok {
		return "", rcierr.UnknownCommand(name, rcierr.WithDesc("Not a command"))
	}
	out, err := p.dispatcher.Handle(n, cmd)
	if err != nil {
		return "", err
	}
	return xmlutil.Tag(cmd.Tag(), out, xmlutil.Attrs{{Name: "target", Value: name}}), nil
}

// group returns the root's container child named name
func (p *Processor) group(name string) (schema.Container, error) {
	n, ok := p.root.Get(name)
	if !ok {
		return nil, rcierr.UnknownCommand(name)
	}
	c, ok := n.(schema.Container)
	if !ok {
		return nil, rcierr.UnknownCommand(name)
	}
	return c, nil
}

// toError returns the RCI error element reporting err
func toError(err error) *rcierr.Error {
	if e, ok := rcierr.As(err); ok {
		return e
	}
	if qe, ok := rcierr.IsQualifierError(err); ok {
		return rcierr.Malformed(rcierr.WithHint(qe.Error()))
	}
	glog.Errorf("processor: %v", err)
	return rcierr.OperationFailed(rcierr.WithHint(err.Error()))
}
