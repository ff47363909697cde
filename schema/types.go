package schema

// DType is a leaf data type tag. Types are descriptive metadata
// published in descriptors; values are never checked against them.
type DType string

// Leaf data types
const (
	TypeNone            DType = "none"
	TypeString          DType = "string"
	TypeMultilineString DType = "multiline_string"
	TypePassword        DType = "password"
	TypeInt32           DType = "int32"
	TypeUint32          DType = "uint32"
	TypeHex32           DType = "hex32"
	TypeXHex32          DType = "0x_hex32"
	TypeFloat           DType = "float"
	TypeEnum            DType = "enum"
	TypeEnumMulti       DType = "enum_multi"
	TypeOnOff           DType = "on_off"
	TypeBoolean         DType = "boolean"
	TypeIPv4            DType = "ipv4"
	TypeFQDNv4          DType = "fqdnv4"
	TypeFQDNv6          DType = "fqdnv6"
	TypeMulti           DType = "multi"
	TypeList            DType = "list"
	TypeRawData         DType = "raw_data"
	TypeXBeeExtAddr     DType = "xbee_ext_addr"
	TypeFileName        DType = "file_name"
	TypeMACAddr         DType = "mac_addr"
	TypeDatetime        DType = "datetime"
)

func (t DType) String() string { return string(t) }

// Access is a node's access mode
type Access string

const (
	// AccessNone leaves the access mode undeclared
	AccessNone Access = ""
	// AccessReadOnly is the default for leaves
	AccessReadOnly  Access = "read_only"
	AccessReadWrite Access = "read_write"
	AccessWriteOnly Access = "write_only"
)

func (a Access) String() string { return string(a) }

// ParseAccess returns the Access for s, and false if s names no
// access mode.
func ParseAccess(s string) (Access, bool) {
	switch a := Access(s); a {
	case AccessNone, AccessReadOnly, AccessReadWrite, AccessWriteOnly:
		return a, true
	}
	return AccessNone, false
}
