package ir

// AttributeKind identifies the variant held by an Attribute.
type AttributeKind uint8

// Attribute kinds. The short names follow ONNX's IR (f, fs, i, is, ...).
const (
	KindFloat AttributeKind = iota + 1
	KindFloats
	KindInt
	KindInts
	KindString
	KindStrings
	KindTensor
	KindTensors
	KindGraph
	KindGraphs
	KindTypeProto
	KindTypeProtos
	KindSparseTensor
	KindSparseTensors
)

// AllAttributeKinds lists every kind, in declaration order.
var AllAttributeKinds = []AttributeKind{
	KindFloat, KindFloats, KindInt, KindInts, KindString, KindStrings,
	KindTensor, KindTensors, KindGraph, KindGraphs, KindTypeProto, KindTypeProtos,
	KindSparseTensor, KindSparseTensors,
}

// String returns the short ONNX IR name of the kind.
func (k AttributeKind) String() string {
	switch k {
	case KindFloat:
		return "f"
	case KindFloats:
		return "fs"
	case KindInt:
		return "i"
	case KindInts:
		return "is"
	case KindString:
		return "s"
	case KindStrings:
		return "ss"
	case KindTensor:
		return "t"
	case KindTensors:
		return "ts"
	case KindGraph:
		return "g"
	case KindGraphs:
		return "gs"
	case KindTypeProto:
		return "tp"
	case KindTypeProtos:
		return "tps"
	case KindSparseTensor:
		return "st"
	case KindSparseTensors:
		return "sts"
	default:
		return "unknown"
	}
}

// Attribute is a node attribute value. The set of implementations is closed.
type Attribute interface {
	Kind() AttributeKind
	attribute()
}

// FloatAttr is a scalar float attribute (f).
type FloatAttr float64

// FloatsAttr is a float list attribute (fs).
type FloatsAttr []float64

// IntAttr is a scalar int attribute (i).
type IntAttr int64

// IntsAttr is an int list attribute (is).
type IntsAttr []int64

// StringAttr is a string attribute (s).
type StringAttr string

// StringsAttr is a string list attribute (ss).
type StringsAttr []string

// TensorAttr is a tensor attribute (t).
type TensorAttr struct{ Tensor *Tensor }

// TensorsAttr is a tensor list attribute (ts).
type TensorsAttr []*Tensor

// GraphAttr is a nested subgraph attribute (g), e.g. the branches of If.
type GraphAttr struct{ Graph *Graph }

// GraphsAttr is a subgraph list attribute (gs).
type GraphsAttr []*Graph

// TypeProtoAttr is a type attribute (tp). The encoded ONNX TypeProto is kept opaque.
type TypeProtoAttr struct{ Encoded []byte }

// TypeProtosAttr is a type list attribute (tps).
type TypeProtosAttr [][]byte

// SparseTensorAttr is a sparse tensor attribute (st), kept encoded.
type SparseTensorAttr struct{ Encoded []byte }

// SparseTensorsAttr is a sparse tensor list attribute (sts), kept encoded.
type SparseTensorsAttr [][]byte

func (FloatAttr) Kind() AttributeKind         { return KindFloat }
func (FloatsAttr) Kind() AttributeKind        { return KindFloats }
func (IntAttr) Kind() AttributeKind           { return KindInt }
func (IntsAttr) Kind() AttributeKind          { return KindInts }
func (StringAttr) Kind() AttributeKind        { return KindString }
func (StringsAttr) Kind() AttributeKind       { return KindStrings }
func (TensorAttr) Kind() AttributeKind        { return KindTensor }
func (TensorsAttr) Kind() AttributeKind       { return KindTensors }
func (GraphAttr) Kind() AttributeKind         { return KindGraph }
func (GraphsAttr) Kind() AttributeKind        { return KindGraphs }
func (TypeProtoAttr) Kind() AttributeKind     { return KindTypeProto }
func (TypeProtosAttr) Kind() AttributeKind    { return KindTypeProtos }
func (SparseTensorAttr) Kind() AttributeKind  { return KindSparseTensor }
func (SparseTensorsAttr) Kind() AttributeKind { return KindSparseTensors }

func (FloatAttr) attribute()         {}
func (FloatsAttr) attribute()        {}
func (IntAttr) attribute()           {}
func (IntsAttr) attribute()          {}
func (StringAttr) attribute()        {}
func (StringsAttr) attribute()       {}
func (TensorAttr) attribute()        {}
func (TensorsAttr) attribute()       {}
func (GraphAttr) attribute()         {}
func (GraphsAttr) attribute()        {}
func (TypeProtoAttr) attribute()     {}
func (TypeProtosAttr) attribute()    {}
func (SparseTensorAttr) attribute()  {}
func (SparseTensorsAttr) attribute() {}
