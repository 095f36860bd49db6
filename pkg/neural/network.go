// Package neural backs the learned-regressor evaluator strategy
// (SPEC_FULL.md §4.D.3): a small gonum-backed feed-forward network with a
// single linear output unit, predicting a scalar (board, move) score instead
// of the teacher's original softmax move classifier.
package neural

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FeatureSize is the dimensionality of the encoded (board, move) feature
// vector consumed by Predict: 49 cells * 12 edge features + 7 global
// features (SPEC_FULL.md §6).
const FeatureSize = 49*12 + 7

// Regressor is a single-hidden-layer feed-forward network with a linear
// scalar output, adapted from the teacher's softmax Network: the hidden
// layer keeps the teacher's ReLU/He-initialization shape, while the output
// layer is a single Identity-activated unit instead of a 3-way softmax.
type Regressor struct {
	inputSize  int
	hiddenSize int
	hidden     *Layer
	output     *Layer
}

// NewRegressor builds a Regressor with random Xavier/He-initialized weights,
// matching the teacher's NewNetwork but with a fixed single-neuron linear
// output layer.
func NewRegressor(inputSize, hiddenSize int) *Regressor {
	hidden := NewLayer(inputSize, hiddenSize)
	output := NewLayer(hiddenSize, 1)
	output.activation = Identity{}
	return &Regressor{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		hidden:     hidden,
		output:     output,
	}
}

// Predict runs a forward pass and returns the single scalar output, the
// `predict(board, move) -> real` surface named in SPEC_FULL.md §4.D.3/§6.
func (r *Regressor) Predict(features []float64) float64 {
	input := mat.NewVecDense(r.inputSize, features)
	hidden := r.hidden.Forward(input)
	output := r.output.Forward(hidden)
	return output.AtVec(0)
}

// SaveWeights persists the regressor to filename using the teacher's own
// binary layout (dimensions, then each matrix/vector), unchanged except for
// the single-row output matrix/vector.
func (r *Regressor) SaveWeights(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating weights file %q", filename)
	}
	defer file.Close()

	if err := writeInt(file, r.inputSize); err != nil {
		return errors.Wrap(err, "writing input size")
	}
	if err := writeInt(file, r.hiddenSize); err != nil {
		return errors.Wrap(err, "writing hidden size")
	}
	if err := writeMatrix(file, r.hidden.weights); err != nil {
		return errors.Wrap(err, "writing hidden weights")
	}
	if err := writeVector(file, r.hidden.biases); err != nil {
		return errors.Wrap(err, "writing hidden biases")
	}
	if err := writeMatrix(file, r.output.weights); err != nil {
		return errors.Wrap(err, "writing output weights")
	}
	if err := writeVector(file, r.output.biases); err != nil {
		return errors.Wrap(err, "writing output biases")
	}
	return nil
}

// LoadRegressor reads a weights file written by SaveWeights, per the
// "model" configuration option of SPEC_FULL.md §6.
func LoadRegressor(filename string) (*Regressor, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening weights file %q", filename)
	}
	defer file.Close()

	inputSize, err := readInt(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading input size")
	}
	hiddenSize, err := readInt(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading hidden size")
	}

	r := NewRegressor(inputSize, hiddenSize)

	r.hidden.weights, err = readMatrix(file, hiddenSize, inputSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading hidden weights")
	}
	r.hidden.biases, err = readVector(file, hiddenSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading hidden biases")
	}
	r.output.weights, err = readMatrix(file, 1, hiddenSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading output weights")
	}
	r.output.biases, err = readVector(file, 1)
	if err != nil {
		return nil, errors.Wrap(err, "reading output biases")
	}
	return r, nil
}

func writeInt(file *os.File, value int) error {
	return binary.Write(file, binary.LittleEndian, int32(value))
}

func readInt(file *os.File) (int, error) {
	var value int32
	if err := binary.Read(file, binary.LittleEndian, &value); err != nil {
		return 0, err
	}
	return int(value), nil
}

func writeMatrix(file *os.File, m mat.Matrix) error {
	r, c := m.Dims()
	if err := writeInt(file, r); err != nil {
		return err
	}
	if err := writeInt(file, c); err != nil {
		return err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err := binary.Write(file, binary.LittleEndian, m.At(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readMatrix(file *os.File, rows, cols int) (*mat.Dense, error) {
	storedRows, err := readInt(file)
	if err != nil {
		return nil, err
	}
	storedCols, err := readInt(file)
	if err != nil {
		return nil, err
	}
	if storedRows != rows || storedCols != cols {
		return nil, errors.Errorf("matrix dimension mismatch: file has %dx%d, want %dx%d", storedRows, storedCols, rows, cols)
	}
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var value float64
			if err := binary.Read(file, binary.LittleEndian, &value); err != nil {
				return nil, err
			}
			m.Set(i, j, value)
		}
	}
	return m, nil
}

func writeVector(file *os.File, v mat.Vector) error {
	if err := writeInt(file, v.Len()); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := binary.Write(file, binary.LittleEndian, v.AtVec(i)); err != nil {
			return err
		}
	}
	return nil
}

func readVector(file *os.File, length int) (*mat.VecDense, error) {
	storedLength, err := readInt(file)
	if err != nil {
		return nil, err
	}
	if storedLength != length {
		return nil, errors.Errorf("vector length mismatch: file has %d, want %d", storedLength, length)
	}
	v := mat.NewVecDense(length, nil)
	for i := 0; i < length; i++ {
		var value float64
		if err := binary.Read(file, binary.LittleEndian, &value); err != nil {
			return nil, err
		}
		v.SetVec(i, value)
	}
	return v, nil
}
