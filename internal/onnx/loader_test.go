package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/cse/internal/ir"
)

func TestLoadFromBytes(t *testing.T) {
	graph := newBuilder().
		msg(1, nodeProto("Relu", []string{"X"}, []string{"a"})).
		msg(1, nodeProto("Relu", []string{"X"}, []string{"b"})).
		msg(1, nodeProto("Add", []string{"a", "b"}, []string{"Z"})).
		str(2, "main").
		msg(11, valueInfo("X", 4)).
		msg(12, valueInfo("Z", 4))

	g, err := LoadFromBytes(modelBytes(graph))
	require.NoError(t, err)

	assert.Equal(t, "main", g.Name)
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "Relu", g.KindName(g.Nodes[0]))
	assert.Equal(t, g.Nodes[0].Kind, g.Nodes[1].Kind)
	assert.Equal(t, "Add", g.KindName(g.Nodes[2]))

	// Values are shared by name across producers and consumers.
	assert.Same(t, g.Nodes[0].Inputs[0], g.Nodes[1].Inputs[0])
	assert.Same(t, g.Nodes[0].Outputs[0], g.Nodes[2].Inputs[0])
	require.Len(t, g.Inputs, 1)
	assert.Same(t, g.Inputs[0], g.Nodes[0].Inputs[0])
	require.Len(t, g.Outputs, 1)
	assert.True(t, g.IsGraphOutput(g.Nodes[2].Outputs[0]))
	assert.NoError(t, g.Validate())
}

func TestLoadQualifiesCustomDomains(t *testing.T) {
	graph := newBuilder().
		msg(1, nodeProto("Gelu", []string{"x"}, []string{"a"})).
		msg(1, nodeProto("Gelu", []string{"x"}, []string{"b"}).str(7, "com.microsoft")).
		msg(1, nodeProto("Relu", []string{"x"}, []string{"c"}).str(7, "ai.onnx"))

	g, err := LoadFromBytes(modelBytes(graph))
	require.NoError(t, err)

	assert.Equal(t, "Gelu", g.KindName(g.Nodes[0]))
	assert.Equal(t, "com.microsoft::Gelu", g.KindName(g.Nodes[1]))
	assert.Equal(t, "com.microsoft", g.Nodes[1].Domain)
	assert.NotEqual(t, g.Nodes[0].Kind, g.Nodes[1].Kind)
	assert.Equal(t, "Relu", g.KindName(g.Nodes[2]))
}

func TestLoadTensors(t *testing.T) {
	graph := newBuilder().
		msg(5, rawTensorProto("raw", TensorProtoFloat, []int64{2}, make([]byte, 8))).
		msg(5, newBuilder().varint(1, 2).varint(2, TensorProtoInt64).str(8, "typed").packedVarints(7, 1, 2)).
		msg(5, newBuilder().varint(2, TensorProtoFloat).str(8, "segment").msg(3, newBuilder().varint(1, 0).varint(2, 1)))

	g, err := LoadFromBytes(modelBytes(graph))
	require.NoError(t, err)
	require.Len(t, g.Initializers, 3)

	raw := g.Initializers[0]
	assert.Equal(t, ir.Float, raw.ElemType)
	assert.Equal(t, []int64{2}, raw.Sizes)
	assert.True(t, raw.IsRaw)
	assert.Len(t, raw.Raw, 8)

	typed := g.Initializers[1]
	assert.False(t, typed.IsRaw)
	assert.Equal(t, []int64{1, 2}, typed.Int64s)

	assert.True(t, g.Initializers[2].Segmented)

	_, ok := g.LookupValue("typed")
	assert.True(t, ok, "initializers are graph values")
}

func TestLoadRejectsExternalData(t *testing.T) {
	tb := newBuilder().
		varint(2, TensorProtoFloat).
		str(8, "W").
		msg(13, newBuilder().str(1, "location").str(2, "w.bin")).
		varint(14, DataLocationExternal)

	_, err := LoadFromBytes(modelBytes(newBuilder().msg(5, tb)))
	require.ErrorIs(t, err, ErrExternalData)
	assert.Contains(t, err.Error(), `initializer "W"`)
}

func TestLoadRejectsRawStrings(t *testing.T) {
	tb := rawTensorProto("s", TensorProtoString, []int64{1}, []byte("abc"))
	_, err := LoadFromBytes(modelBytes(newBuilder().msg(5, tb)))
	assert.Error(t, err)
}

func loadAttribute(t *testing.T, ab *protoBuilder) (*ir.Graph, ir.Attribute) {
	t.Helper()
	node := nodeProto("Op", []string{"x"}, []string{"y"}).msg(5, ab)
	g, err := LoadFromBytes(modelBytes(newBuilder().msg(1, node)))
	require.NoError(t, err)
	n := g.Nodes[0]
	require.Equal(t, 1, n.NumAttributes())
	return g, n.Attr(n.AttributeNames()[0])
}

func TestLoadAttributes(t *testing.T) {
	value := rawTensorProto("", TensorProtoFloat, nil, make([]byte, 4))
	body := newBuilder().msg(1, nodeProto("Identity", []string{"x"}, []string{"z"})).str(2, "body")

	tests := []struct {
		name  string
		attr  *protoBuilder
		check func(t *testing.T, g *ir.Graph, a ir.Attribute)
	}{
		{"float", attrProto("alpha", AttributeProtoFloat).float(2, 0.5), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.FloatAttr(0.5), a)
		}},
		{"int", attrProto("axis", AttributeProtoInt).varint(3, -1), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.IntAttr(-1), a)
		}},
		{"string", attrProto("mode", AttributeProtoString).str(4, "linear"), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.StringAttr("linear"), a)
		}},
		{"floats", attrProto("scales", AttributeProtoFloats).packedFloats(7, 1, 0.5), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.FloatsAttr{1, 0.5}, a)
		}},
		{"ints", attrProto("perm", AttributeProtoInts).packedVarints(8, 1, 0), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.IntsAttr{1, 0}, a)
		}},
		{"strings", attrProto("dirs", AttributeProtoStrings).str(9, "fwd").str(9, "rev"), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.StringsAttr{"fwd", "rev"}, a)
		}},
		{"tensor", attrProto("value", AttributeProtoTensor).msg(5, value), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			ta, ok := a.(ir.TensorAttr)
			require.True(t, ok)
			assert.True(t, ta.Tensor.IsRaw)
		}},
		{"tensors", attrProto("values", AttributeProtoTensors).msg(10, value).msg(10, value), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Len(t, a, 2)
		}},
		{"graph", attrProto("body", AttributeProtoGraph).msg(6, body), func(t *testing.T, g *ir.Graph, a ir.Attribute) {
			ga, ok := a.(ir.GraphAttr)
			require.True(t, ok)
			assert.Equal(t, "body", ga.Graph.Name)
			assert.Same(t, g.Symbols, ga.Graph.Symbols)
			assert.Equal(t, "Identity", g.KindName(ga.Graph.Nodes[0]))
		}},
		{"graphs", attrProto("branches", AttributeProtoGraphs).msg(11, body), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.KindGraphs, a.Kind())
		}},
		{"type proto", attrProto("dtype", AttributeProtoTypeProto).bytes(14, []byte{1}), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.TypeProtoAttr{Encoded: []byte{1}}, a)
		}},
		{"type protos", attrProto("dtypes", AttributeProtoTypes).bytes(15, []byte{1}), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.KindTypeProtos, a.Kind())
		}},
		{"sparse tensor", attrProto("sparse_value", AttributeProtoSparse).bytes(22, []byte{1}), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.KindSparseTensor, a.Kind())
		}},
		{"sparse tensors", attrProto("sparse_values", AttributeProtoSparses).bytes(23, []byte{1}), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.KindSparseTensors, a.Kind())
		}},
		{"untyped ints", newBuilder().str(1, "axes").packedVarints(8, 0, 2), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.IntsAttr{0, 2}, a)
		}},
		{"untyped tensor", newBuilder().str(1, "value").msg(5, value), func(t *testing.T, _ *ir.Graph, a ir.Attribute) {
			assert.Equal(t, ir.KindTensor, a.Kind())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, a := loadAttribute(t, tt.attr)
			tt.check(t, g, a)
		})
	}
}

func TestLoadAttributeErrors(t *testing.T) {
	node := nodeProto("Op", []string{"x"}, []string{"y"}).msg(5, attrProto("bad", 42))
	_, err := LoadFromBytes(modelBytes(newBuilder().msg(1, node)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `attribute "bad"`)

	node = nodeProto("Op", []string{"x"}, []string{"y"}).msg(5, attrProto("value", AttributeProtoTensor))
	_, err = LoadFromBytes(modelBytes(newBuilder().msg(1, node)))
	assert.Error(t, err)
}

func TestLoadWithoutGraph(t *testing.T) {
	_, err := LoadFromProto(&ModelProto{}, DefaultLoadOptions())
	assert.Error(t, err)

	_, err = LoadFromProto(nil, LoadOptions{})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "add.onnx")
	require.NoError(t, os.WriteFile(path, modelBytes(simpleAddGraph()), 0o600))

	g, err := Load(path, LoadOptions{Logger: hclog.NewNullLogger()})
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.onnx"))
	assert.Error(t, err)
}

func TestGetModelInfo(t *testing.T) {
	graph := simpleAddGraph().
		msg(5, rawTensorProto("Y", TensorProtoFloat, []int64{1}, make([]byte, 4)))
	path := filepath.Join(t.TempDir(), "info.onnx")
	require.NoError(t, os.WriteFile(path, modelBytes(graph), 0o600))

	info, err := GetModelInfo(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), info.IRVersion)
	assert.Equal(t, int64(13), info.OpsetVersion)
	assert.Equal(t, "born-test", info.ProducerName)
	assert.Equal(t, []string{"X"}, info.InputNames, "initializer-backed inputs are weights")
	assert.Equal(t, []string{"Z"}, info.OutputNames)
	assert.Equal(t, 1, info.NodeCount)
	assert.Equal(t, 1, info.WeightCount)
}
