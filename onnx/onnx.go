// Package onnx loads ONNX models into the graph form the cse package works on.
//
// The .onnx protobuf encoding is decoded without a protobuf dependency. Every node,
// attribute and initializer of the main graph and its subgraphs is imported; tensor
// payloads are kept in the storage the file uses (typed fields or raw bytes) so that
// equivalence checks see exactly what the producer wrote.
//
// # Example Usage
//
//	import (
//	    "github.com/born-ml/cse/cse"
//	    "github.com/born-ml/cse/onnx"
//	)
//
//	g, err := onnx.Load("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := cse.NewIndex(cse.DefaultOptions()).Scan(g)
//
// # Limitations
//
//   - Tensors stored as external data are rejected with [ErrExternalData].
//   - Sparse tensor and type proto attributes are imported as opaque bytes.
package onnx

import (
	"github.com/born-ml/cse/internal/ir"
	internalonnx "github.com/born-ml/cse/internal/onnx"
)

// LoadOptions configures ONNX model loading behavior.
type LoadOptions = internalonnx.LoadOptions

// ErrExternalData is returned for models whose tensors live in side files.
var ErrExternalData = internalonnx.ErrExternalData

// DefaultLoadOptions returns the default options for loading ONNX models:
// no logging.
func DefaultLoadOptions() LoadOptions {
	return internalonnx.DefaultLoadOptions()
}

// Load reads the main graph of an ONNX model file.
//
// Example:
//
//	g, err := onnx.Load("resnet18.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Nodes:", len(g.Nodes))
//
// For diagnostics, pass a logger:
//
//	opts := onnx.DefaultLoadOptions()
//	opts.Logger = hclog.Default()
//	g, err := onnx.Load("model.onnx", opts)
func Load(path string, opts ...LoadOptions) (*ir.Graph, error) {
	return internalonnx.Load(path, opts...)
}

// LoadFromBytes reads the main graph of an encoded ONNX model.
//
// Example:
//
//	modelBytes, _ := os.ReadFile("model.onnx")
//	g, err := onnx.LoadFromBytes(modelBytes)
func LoadFromBytes(data []byte, opts ...LoadOptions) (*ir.Graph, error) {
	return internalonnx.LoadFromBytes(data, opts...)
}

// ModelInfo contains metadata about an ONNX model without building its graph.
//
// Use [GetModelInfo] to quickly inspect a model file.
type ModelInfo = internalonnx.ModelInfo

// GetModelInfo extracts metadata from an ONNX file.
//
// Example:
//
//	info, err := onnx.GetModelInfo("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Producer: %s\n", info.ProducerName)
//	fmt.Printf("Opset: %d\n", info.OpsetVersion)
//	fmt.Printf("Inputs: %v\n", info.InputNames)
func GetModelInfo(path string) (*ModelInfo, error) {
	return internalonnx.GetModelInfo(path)
}
