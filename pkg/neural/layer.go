package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Layer represents a neural network layer
type Layer struct {
	weights    *mat.Dense
	biases     *mat.VecDense
	activation Activation
	inputSize  int
	outputSize int
}

// Activation represents a neural network activation function
type Activation interface {
	Forward(x float64) float64
}

// ReLU implements the ReLU activation function
type ReLU struct{}

func (r *ReLU) Forward(x float64) float64 {
	return relu(x)
}

// Identity is the activation used by the learned regressor's output unit: a
// single linear scalar, not a softmax distribution (SPEC_FULL.md §4.D.3).
type Identity struct{}

func (Identity) Forward(x float64) float64 { return x }

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// NewLayer creates a new layer with the specified input and output sizes,
// with ReLU as the default activation (callers needing a different
// activation, e.g. a linear output unit, overwrite layer.activation).
func NewLayer(inputSize, outputSize int) *Layer {
	// Initialize weights using He initialization
	weights := mat.NewDense(outputSize, inputSize, nil)
	scale := math.Sqrt(2.0 / float64(inputSize))
	for i := 0; i < outputSize; i++ {
		for j := 0; j < inputSize; j++ {
			// Generate two random numbers and use them to create a zero-mean pair
			r1 := rand.NormFloat64()
			r2 := -r1
			// Use one of them randomly
			if rand.Float64() < 0.5 {
				weights.Set(i, j, r1*scale)
			} else {
				weights.Set(i, j, r2*scale)
			}
		}
	}

	// Initialize biases to zero
	biases := mat.NewVecDense(outputSize, nil)

	return &Layer{
		weights:    weights,
		biases:     biases,
		activation: &ReLU{},
		inputSize:  inputSize,
		outputSize: outputSize,
	}
}

// Forward performs a forward pass through the layer
func (l *Layer) Forward(input *mat.VecDense) *mat.VecDense {
	// Compute z = Wx + b
	z := mat.NewVecDense(l.outputSize, nil)
	z.MulVec(l.weights, input)
	z.AddVec(z, l.biases)

	// Apply activation function
	output := mat.NewVecDense(l.outputSize, nil)
	for i := 0; i < l.outputSize; i++ {
		output.SetVec(i, l.activation.Forward(z.AtVec(i)))
	}

	return output
}
