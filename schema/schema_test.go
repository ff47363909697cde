package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name    string
		node    Node
		want    string
		wantErr string
	}{
		{name: "leaf", node: NewLeaf("baud"), want: "<baud/>"},
		{name: "simple leaf without accessor", node: NewSimpleLeaf("baud"), want: "<baud/>"},
		{
			name: "accessor body",
			node: NewSimpleLeaf("temp", WithAccessor(func() (Value, error) { return Text("42"), nil })),
			want: "<temp>42</temp>",
		},
		{
			name: "accessor body and attributes",
			node: NewSimpleLeaf("temp", WithAccessor(func() (Value, error) {
				return Value{Body: "42", Attrs: map[string]string{"unit": "C"}}, nil
			})),
			want: `<temp unit="C">42</temp>`,
		},
		{
			name: "accessor attributes sorted",
			node: NewSimpleLeaf("temp", WithAccessor(func() (Value, error) {
				return Value{Attrs: map[string]string{"unit": "C", "sensor": "2"}}, nil
			})),
			want: `<temp sensor="2" unit="C"/>`,
		},
		{
			name: "accessor cdata body",
			node: NewSimpleLeaf("banner", WithAccessor(func() (Value, error) { return Text(CDATA("<hi>")), nil })),
			want: "<banner><![CDATA[<hi>]]></banner>",
		},
		{
			name: "accessor error",
			node: NewSimpleLeaf("temp", WithAccessor(func() (Value, error) { return Value{}, errors.New("sensor offline") })),
			wantErr: "accessor temp: sensor offline",
		},
		{name: "empty branch", node: NewBranch("serial"), want: "<serial/>"},
		{
			name: "branch renders children in order",
			node: NewBranch("serial").Attach(
				NewSimpleLeaf("baud", WithAccessor(func() (Value, error) { return Text("9600"), nil })),
				NewLeaf("parity"),
				NewBranch("flow").Attach(NewLeaf("rts")),
			),
			want: "<serial><baud>9600</baud><parity/><flow><rts/></flow></serial>",
		},
		{
			name: "branch propagates accessor errors",
			node: NewBranch("serial").Attach(
				NewSimpleLeaf("baud", WithAccessor(func() (Value, error) { return Value{}, errors.New("uart closed") })),
			),
			wantErr: "accessor baud: uart closed",
		},
		{
			name: "target renders children",
			node: NewTarget("reboot", WithCallback(func(string) (string, error) { return "ignored", nil })).Attach(NewLeaf("delay")),
			want: "<reboot><delay/></reboot>",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			got, err := Render(tc.node)
			if tc.wantErr != "" {
				check.EqualError(err, tc.wantErr)
				return
			}
			check.NoError(err)
			check.Equal(tc.want, got)
		})
	}
}

func TestRenderDoesNotCallSetter(t *testing.T) {
	check := assert.New(t)
	var sets, gets int
	leaf := NewSimpleLeaf("baud",
		WithAccessor(func() (Value, error) { gets++; return Text("9600"), nil }),
		WithSetter(func(string, map[string]string) error { sets++; return nil }))
	for i := 0; i < 3; i++ {
		got, err := Render(leaf)
		check.NoError(err)
		check.Equal("<baud>9600</baud>", got)
	}
	check.Equal(3, gets)
	check.Equal(0, sets)
}

func TestLeafDefaults(t *testing.T) {
	check := assert.New(t)
	l := NewLeaf("baud")
	check.Equal(KindLeaf, l.Kind())
	check.Equal(TypeString, l.Type())
	check.Equal(AccessReadOnly, l.Access())
	check.Equal("", l.Desc())

	s := NewSimpleLeaf("baud", WithType(TypeUint32), WithAccess(AccessReadWrite), WithMin("300"),
		WithMax("115200"), WithDefault("9600"), WithUnits("bps"), WithFormat("%d"), WithDesc("Baud rate"))
	check.Equal(KindSimpleLeaf, s.Kind())
	check.Equal(TypeUint32, s.Type())
	check.Equal(AccessReadWrite, s.Access())
	check.Equal("300", s.Min())
	check.Equal("115200", s.Max())
	check.Equal("9600", s.Default())
	check.Equal("bps", s.Units())
	check.Equal("%d", s.Format())
	check.Equal("Baud rate", s.Desc())
	check.Nil(s.Accessor())
	check.Nil(s.Setter())

	b := NewBranch("serial")
	check.Equal(KindBranch, b.Kind())
	check.Equal(AccessNone, b.Access())
	_, ok := b.DescriptorAvailable()
	check.False(ok)
	avail, ok := NewBranch("serial", WithDescriptorAvailable(true)).DescriptorAvailable()
	check.True(avail && ok)

	check.Equal(KindTarget, NewTarget("reboot").Kind())
	check.Nil(NewTarget("reboot").Callback())
}

func TestCatalogsPerInstance(t *testing.T) {
	check := assert.New(t)
	opts := []Option{
		WithAttribute("index", "Port index", AttributeValue{Value: "1"}, AttributeValue{Value: "2"}),
		WithError("1", "out of range"),
	}
	a, b := NewLeaf("port", opts...), NewLeaf("port", opts...)

	attrs := a.Attributes()
	attrs[0].Values[0].Value = "changed"
	attrs[0].Name = "changed"
	check.Equal("index", a.Attributes()[0].Name)
	check.Equal("1", a.Attributes()[0].Values[0].Value)
	check.Equal("1", b.Attributes()[0].Values[0].Value)

	errs := a.Errors()
	errs[0].Desc = "changed"
	desc, ok := a.ErrorDesc("1")
	check.True(ok)
	check.Equal("out of range", desc)
	_, ok = b.ErrorDesc("2")
	check.False(ok)

	check.Empty(NewLeaf("other").Attributes())
	check.Empty(NewBranch("other").Errors())
}

func TestChildrenSnapshot(t *testing.T) {
	check := assert.New(t)
	b := NewBranch("serial").Attach(NewLeaf("baud"), NewLeaf("parity"))
	children := b.Children()
	children[0] = NewLeaf("replaced")
	_ = append(children, NewLeaf("extra"))
	if check.Len(b.Children(), 2) {
		check.Equal("baud", b.Children()[0].Name())
	}
	b.Attach(NewLeaf("stop"))
	check.Len(children, 2)
	check.Len(b.Children(), 3)
}

func TestGetAndLookup(t *testing.T) {
	check := assert.New(t)
	baud := NewLeaf("baud")
	root := NewBranch("query_setting").Attach(
		NewBranch("serial").Attach(baud),
		NewTarget("reboot").Attach(NewLeaf("delay")),
	)

	got, ok := root.Get("serial")
	check.True(ok)
	check.Equal("serial", got.Name())
	_, ok = root.Get("missing")
	check.False(ok)

	for _, tc := range []struct {
		path string
		want string
		ok   bool
	}{
		{path: "", want: "query_setting", ok: true},
		{path: "/", want: "query_setting", ok: true},
		{path: "serial", want: "serial", ok: true},
		{path: "serial/baud", want: "baud", ok: true},
		{path: "/serial/baud/", want: "baud", ok: true},
		{path: "reboot/delay", want: "delay", ok: true},
		{path: "serial/baud/deeper"},
		{path: "serial/missing"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			check := assert.New(t)
			n, ok := Lookup(root, tc.path)
			check.Equal(tc.ok, ok)
			if tc.ok {
				check.Equal(tc.want, n.Name())
			}
		})
	}
	n, _ := Lookup(root, "serial/baud")
	check.Same(baud, n)
}

func TestConstructorPanics(t *testing.T) {
	check := assert.New(t)
	check.Panics(func() { NewLeaf("") })
	check.Panics(func() { NewSimpleLeaf("") })
	check.Panics(func() { NewBranch("") })
	check.Panics(func() { NewTarget("") })
	check.Panics(func() { NewBranch("b").Attach(nil) })
}

func TestKindAccessStrings(t *testing.T) {
	check := assert.New(t)
	check.Equal("leaf", KindLeaf.String())
	check.Equal("simple-leaf", KindSimpleLeaf.String())
	check.Equal("branch", KindBranch.String())
	check.Equal("target", KindTarget.String())
	check.Equal("Kind(9)", Kind(9).String())
	check.Equal("read_write", AccessReadWrite.String())
	check.Equal("uint32", TypeUint32.String())

	a, ok := ParseAccess("write_only")
	check.True(ok)
	check.Equal(AccessWriteOnly, a)
	_, ok = ParseAccess("sometimes")
	check.False(ok)
}
