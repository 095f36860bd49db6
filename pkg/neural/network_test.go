package neural

import (
	"math"
	"path/filepath"
	"testing"
)

func TestRegressorDimensions(t *testing.T) {
	r := NewRegressor(FeatureSize, 32)
	rows, cols := r.hidden.weights.Dims()
	if rows != 32 || cols != FeatureSize {
		t.Errorf("hidden weights dimensions = %dx%d, want %dx%d", rows, cols, 32, FeatureSize)
	}
	rows, cols = r.output.weights.Dims()
	if rows != 1 || cols != 32 {
		t.Errorf("output weights dimensions = %dx%d, want %dx%d", rows, cols, 1, 32)
	}
}

func TestPredictReturnsFiniteScalar(t *testing.T) {
	r := NewRegressor(FeatureSize, 16)
	features := make([]float64, FeatureSize)
	features[0] = 1.0

	got := r.Predict(features)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("Predict returned non-finite value: %v", got)
	}
}

func TestPredictIsLinearOutputNotProbability(t *testing.T) {
	// Unlike the teacher's softmax classifier, a single large input should be
	// able to push the scalar output well outside [0, 1].
	r := NewRegressor(FeatureSize, 8)
	for i := range r.output.weights.RawMatrix().Data {
		r.output.weights.RawMatrix().Data[i] = 10.0
	}
	for i := range r.hidden.weights.RawMatrix().Data {
		r.hidden.weights.RawMatrix().Data[i] = 1.0
	}

	features := make([]float64, FeatureSize)
	for i := range features {
		features[i] = 1.0
	}

	got := r.Predict(features)
	if got >= 0 && got <= 1 {
		t.Fatalf("expected a scalar outside [0,1] from a linear output unit, got %v", got)
	}
}

func TestSaveLoadRegressorRoundTrip(t *testing.T) {
	r := NewRegressor(FeatureSize, 12)
	path := filepath.Join(t.TempDir(), "weights.bin")
	if err := r.SaveWeights(path); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}

	loaded, err := LoadRegressor(path)
	if err != nil {
		t.Fatalf("LoadRegressor: %v", err)
	}

	features := make([]float64, FeatureSize)
	features[3] = 1.0
	if got, want := loaded.Predict(features), r.Predict(features); math.Abs(got-want) > 1e-9 {
		t.Fatalf("predictions diverged after round trip: got %v, want %v", got, want)
	}
}

func TestLoadRegressorAcceptsNonDefaultInputSize(t *testing.T) {
	r := NewRegressor(FeatureSize, 12)
	path := filepath.Join(t.TempDir(), "weights.bin")
	if err := r.SaveWeights(path); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}

	// Save a regressor whose input size differs from FeatureSize; the file's
	// own dimensions are consistent, so loading it succeeds.
	bad := NewRegressor(FeatureSize+1, 12)
	badPath := filepath.Join(t.TempDir(), "bad.bin")
	if err := bad.SaveWeights(badPath); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	loaded, err := LoadRegressor(badPath)
	if err != nil {
		t.Fatalf("LoadRegressor should succeed with consistent internal dimensions: %v", err)
	}
	if loaded.inputSize != FeatureSize+1 {
		t.Fatalf("loaded input size = %d, want %d", loaded.inputSize, FeatureSize+1)
	}
}
