package model

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ecosort/waste-api/internal/preprocess"
	"github.com/ecosort/waste-api/internal/waste"
)

// Engine wraps a loaded ONNX session with pre-allocated input and output
// tensors. It is constructed once at startup and shared read-only by all
// request handlers; Predict serializes access because the session reuses
// the same tensor buffers across calls.
type Engine struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// New loads the ONNX model at modelPath and prepares a reusable inference
// session. The model file is self-describing, so no architecture is
// duplicated here; the fixed shapes below are the contract with the
// normalizer and the label table.
func New(modelPath string) (*Engine, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found at %s: %w", modelPath, err)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputShape := ort.NewShape(1, preprocess.TargetSize, preprocess.TargetSize, preprocess.Channels)
	outputShape := ort.NewShape(1, waste.ClassCount)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Engine{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Predict runs one forward pass over a normalized 1x300x300x3 input and
// returns the 6-wide softmax probability vector.
func (e *Engine) Predict(input []float32) ([]float32, error) {
	if len(input) != preprocess.InputLength {
		return nil, fmt.Errorf("expected %d input values, got %d", preprocess.InputLength, len(input))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.inputTensor.GetData(), input)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	probs := make([]float32, waste.ClassCount)
	copy(probs, e.outputTensor.GetData())
	return probs, nil
}

// Argmax returns the index of the maximum value. Ties break toward the
// lowest index.
func Argmax(probs []float32) int {
	maxIdx := 0
	for i, v := range probs {
		if v > probs[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// Close releases the tensors and session. Deferred in main; there is no
// other teardown path.
func (e *Engine) Close() {
	if e.inputTensor != nil {
		e.inputTensor.Destroy()
	}
	if e.outputTensor != nil {
		e.outputTensor.Destroy()
	}
	if e.session != nil {
		e.session.Destroy()
	}
	ort.DestroyEnvironment()
}
