package domain

import "fmt"

type Shape string

const (
	ShapePlainText Shape = "plain_text"
	ShapeTextArray Shape = "text_array"
	ShapeBlob      Shape = "blob"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapePlainText, ShapeTextArray, ShapeBlob:
		return true
	default:
		return false
	}
}

// GenerationResult is one of TextResult, TextListResult or BinaryResult.
type GenerationResult interface {
	Shape() Shape
	// Empty reports a result that carries no usable content.
	Empty() bool
	isGenerationResult()
}

type TextResult struct {
	Text string
}

func (TextResult) Shape() Shape        { return ShapePlainText }
func (r TextResult) Empty() bool       { return r.Text == "" }
func (TextResult) isGenerationResult() {}
func (r TextResult) String() string    { return r.Text }

type TextListResult struct {
	Items []string
}

func (TextListResult) Shape() Shape        { return ShapeTextArray }
func (r TextListResult) Empty() bool       { return len(r.Items) == 0 }
func (TextListResult) isGenerationResult() {}

type BinaryResult struct {
	Data     []byte
	MIMEType string
}

func (BinaryResult) Shape() Shape        { return ShapeBlob }
func (r BinaryResult) Empty() bool       { return len(r.Data) == 0 }
func (BinaryResult) isGenerationResult() {}

func (r BinaryResult) String() string {
	return fmt.Sprintf("%s (%d bytes)", r.MIMEType, len(r.Data))
}

// Region names the part of a screen the viewport can be moved to.
type Region string

const (
	RegionLoading Region = "loading"
	RegionResults Region = "results"
)
