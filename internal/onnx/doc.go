// Package onnx reads .onnx model files into the graph IR.
//
// The protobuf wire format is decoded by hand: ModelProto, GraphProto, NodeProto,
// TensorProto (typed fields, raw data, segments, external data markers) and
// AttributeProto of every type. Type protos and sparse tensors are kept encoded.
//
// Load builds an ir.Graph whose node kinds are interned op types. Operators from a
// non-default domain are interned as "domain::op_type".
//
// Example usage:
//
//	g, err := onnx.Load("resnet50.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, n := range g.Nodes {
//	    fmt.Println(g.KindName(n), len(n.Inputs))
//	}
package onnx
