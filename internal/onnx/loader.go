package onnx

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/born-ml/cse/internal/ir"
)

// ErrExternalData is returned for tensors whose payload lives outside the model file.
var ErrExternalData = errors.New("onnx: tensor data stored externally")

// LoadOptions configures model import.
type LoadOptions struct {
	// Logger receives import diagnostics. Nil means no logging.
	Logger hclog.Logger
}

// DefaultLoadOptions returns default loading options.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Logger: hclog.NewNullLogger(),
	}
}

// Load parses an ONNX model file and builds its main graph.
//
// Example:
//
//	g, err := onnx.Load("resnet50.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(g.Nodes))
func Load(path string, opts ...LoadOptions) (*ir.Graph, error) {
	opt := DefaultLoadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	proto, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ONNX file: %w", err)
	}

	return LoadFromProto(proto, opt)
}

// LoadFromBytes builds the main graph of an encoded ONNX model.
func LoadFromBytes(data []byte, opts ...LoadOptions) (*ir.Graph, error) {
	opt := DefaultLoadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	proto, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ONNX data: %w", err)
	}

	return LoadFromProto(proto, opt)
}

// LoadFromProto builds the main graph of a parsed model.
func LoadFromProto(proto *ModelProto, opt LoadOptions) (*ir.Graph, error) {
	if proto == nil || proto.Graph == nil {
		return nil, errors.New("model has no graph")
	}
	logger := opt.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	imp := &importer{symbols: ir.NewSymbolTable(), logger: logger.Named("onnx")}
	g, err := imp.graph(proto.Graph)
	if err != nil {
		return nil, err
	}
	imp.logger.Debug("model loaded",
		"graph", g.Name,
		"producer", proto.ProducerName,
		"nodes", len(g.Nodes),
		"initializers", len(g.Initializers))
	return g, nil
}

// importer converts protos to IR. All graphs of one model share a symbol table.
type importer struct {
	symbols *ir.SymbolTable
	logger  hclog.Logger
}

func (imp *importer) graph(gp *GraphProto) (*ir.Graph, error) {
	g := ir.NewGraphWithSymbols(gp.Name, imp.symbols)

	for i := range gp.Inputs {
		g.Inputs = append(g.Inputs, g.Value(gp.Inputs[i].Name))
	}

	for i := range gp.Initializers {
		t, err := imp.tensor(&gp.Initializers[i])
		if err != nil {
			return nil, fmt.Errorf("initializer %q: %w", gp.Initializers[i].Name, err)
		}
		g.Value(t.Name)
		g.Initializers = append(g.Initializers, t)
	}

	for i := range gp.Nodes {
		np := &gp.Nodes[i]
		n := g.AddNode(opKind(np.Domain, np.OpType), np.Inputs, np.Outputs)
		n.Name = np.Name
		n.Domain = np.Domain
		for j := range np.Attributes {
			ap := &np.Attributes[j]
			a, err := imp.attribute(ap)
			if err != nil {
				return nil, fmt.Errorf("node %q (%s) attribute %q: %w", np.Name, np.OpType, ap.Name, err)
			}
			g.SetAttr(n, ap.Name, a)
		}
	}

	for i := range gp.Outputs {
		g.Outputs = append(g.Outputs, g.Value(gp.Outputs[i].Name))
	}

	return g, nil
}

// opKind is the node kind symbol name. Operators outside the default domain are
// qualified so that same-named ops from different domains never compare equal.
func opKind(domain, opType string) string {
	if domain == "" || domain == "ai.onnx" {
		return opType
	}
	return domain + "::" + opType
}

func (imp *importer) tensor(tp *TensorProto) (*ir.Tensor, error) {
	if tp.DataLocation == DataLocationExternal || len(tp.ExternalData) > 0 {
		return nil, ErrExternalData
	}
	t := &ir.Tensor{
		Name:      tp.Name,
		ElemType:  ir.ElemType(tp.DataType),
		Sizes:     tp.Dims,
		Segmented: tp.Segment != nil,
	}
	if tp.RawData != nil {
		if tp.DataType == TensorProtoString {
			return nil, errors.New("string tensor with raw data")
		}
		t.IsRaw = true
		t.Raw = tp.RawData
		return t, nil
	}

	t.Floats = tp.FloatData
	t.Int32s = tp.Int32Data
	t.Int64s = tp.Int64Data
	t.Doubles = tp.DoubleData
	t.Uint64s = tp.Uint64Data
	t.Strings = tp.StringData
	return t, nil
}

func (imp *importer) tensors(tps []TensorProto) ([]*ir.Tensor, error) {
	out := make([]*ir.Tensor, len(tps))
	for i := range tps {
		t, err := imp.tensor(&tps[i])
		if err != nil {
			return nil, fmt.Errorf("tensor #%d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

//nolint:gocyclo,cyclop // One case per attribute type.
func (imp *importer) attribute(ap *AttributeProto) (ir.Attribute, error) {
	typ := ap.Type
	if typ == AttributeProtoUndefined {
		typ = inferAttributeType(ap)
		imp.logger.Trace("attribute without type", "name", ap.Name, "inferred", typ)
	}

	switch typ {
	case AttributeProtoFloat:
		return ir.FloatAttr(ap.F), nil
	case AttributeProtoInt:
		return ir.IntAttr(ap.I), nil
	case AttributeProtoString:
		return ir.StringAttr(ap.S), nil
	case AttributeProtoTensor:
		if ap.T == nil {
			return nil, errors.New("tensor attribute without value")
		}
		t, err := imp.tensor(ap.T)
		if err != nil {
			return nil, err
		}
		return ir.TensorAttr{Tensor: t}, nil
	case AttributeProtoGraph:
		if ap.G == nil {
			return nil, errors.New("graph attribute without value")
		}
		sub, err := imp.graph(ap.G)
		if err != nil {
			return nil, fmt.Errorf("subgraph %q: %w", ap.G.Name, err)
		}
		return ir.GraphAttr{Graph: sub}, nil
	case AttributeProtoFloats:
		fs := make(ir.FloatsAttr, len(ap.Floats))
		for i, f := range ap.Floats {
			fs[i] = float64(f)
		}
		return fs, nil
	case AttributeProtoInts:
		return ir.IntsAttr(ap.Ints), nil
	case AttributeProtoStrings:
		ss := make(ir.StringsAttr, len(ap.Strings))
		for i, s := range ap.Strings {
			ss[i] = string(s)
		}
		return ss, nil
	case AttributeProtoTensors:
		ts, err := imp.tensors(ap.Tensors)
		if err != nil {
			return nil, err
		}
		return ir.TensorsAttr(ts), nil
	case AttributeProtoGraphs:
		gs := make(ir.GraphsAttr, len(ap.Graphs))
		for i := range ap.Graphs {
			sub, err := imp.graph(&ap.Graphs[i])
			if err != nil {
				return nil, fmt.Errorf("subgraph #%d: %w", i, err)
			}
			gs[i] = sub
		}
		return gs, nil
	case AttributeProtoSparse:
		return ir.SparseTensorAttr{Encoded: ap.SparseTensor}, nil
	case AttributeProtoSparses:
		return ir.SparseTensorsAttr(ap.SparseTensors), nil
	case AttributeProtoTypeProto:
		return ir.TypeProtoAttr{Encoded: ap.TP}, nil
	case AttributeProtoTypes:
		return ir.TypeProtosAttr(ap.TypeProtos), nil
	default:
		return nil, fmt.Errorf("unknown attribute type %d", typ)
	}
}

// inferAttributeType guesses the type of an attribute written before the type field
// existed, from whichever value field is populated.
func inferAttributeType(ap *AttributeProto) int32 {
	switch {
	case ap.T != nil:
		return AttributeProtoTensor
	case ap.G != nil:
		return AttributeProtoGraph
	case ap.S != nil:
		return AttributeProtoString
	case len(ap.Floats) > 0:
		return AttributeProtoFloats
	case len(ap.Ints) > 0:
		return AttributeProtoInts
	case len(ap.Strings) > 0:
		return AttributeProtoStrings
	case len(ap.Tensors) > 0:
		return AttributeProtoTensors
	case len(ap.Graphs) > 0:
		return AttributeProtoGraphs
	case ap.F != 0:
		return AttributeProtoFloat
	default:
		return AttributeProtoInt
	}
}

// ModelInfo contains basic information about an ONNX model without building its graph.
type ModelInfo struct {
	IRVersion       int64
	OpsetVersion    int64
	ProducerName    string
	ProducerVersion string
	InputNames      []string
	OutputNames     []string
	NodeCount       int
	WeightCount     int
}

// GetModelInfo extracts basic info from an ONNX file.
func GetModelInfo(path string) (*ModelInfo, error) {
	proto, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return modelInfo(proto), nil
}

func modelInfo(proto *ModelProto) *ModelInfo {
	info := &ModelInfo{
		IRVersion:       proto.IRVersion,
		ProducerName:    proto.ProducerName,
		ProducerVersion: proto.ProducerVersion,
	}

	for _, opset := range proto.OpsetImport {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			info.OpsetVersion = opset.Version
			break
		}
	}

	if proto.Graph == nil {
		return info
	}

	// Graph inputs that are also initializers are weights, not runtime inputs.
	initNames := make(map[string]bool)
	for i := range proto.Graph.Initializers {
		initNames[proto.Graph.Initializers[i].Name] = true
	}
	for i := range proto.Graph.Inputs {
		if !initNames[proto.Graph.Inputs[i].Name] {
			info.InputNames = append(info.InputNames, proto.Graph.Inputs[i].Name)
		}
	}
	for i := range proto.Graph.Outputs {
		info.OutputNames = append(info.OutputNames, proto.Graph.Outputs[i].Name)
	}
	info.NodeCount = len(proto.Graph.Nodes)
	info.WeightCount = len(proto.Graph.Initializers)
	return info
}
