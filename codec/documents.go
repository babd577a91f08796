package codec

import (
	"fmt"

	"github.com/katalvlaran/clements/matrix"
)

// MatrixDocument is the on-disk form of a complex matrix. JSON has no complex
// type, so real and imaginary parts are stored as separate row-major arrays.
type MatrixDocument struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Real []float64 `json:"real"`
	Imag []float64 `json:"imag"`
}

// NewMatrixDocument captures m.
func NewMatrixDocument(m matrix.Matrix) (MatrixDocument, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return MatrixDocument{}, err
	}
	r, c := m.Rows(), m.Cols()
	doc := MatrixDocument{Rows: r, Cols: c, Real: make([]float64, 0, r*c), Imag: make([]float64, 0, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return MatrixDocument{}, err
			}
			doc.Real = append(doc.Real, real(v))
			doc.Imag = append(doc.Imag, imag(v))
		}
	}

	return doc, nil
}

// Dense rebuilds the matrix. A missing Imag array means a real matrix.
func (d MatrixDocument) Dense() (*matrix.Dense, error) {
	n := d.Rows * d.Cols
	if d.Rows <= 0 || d.Cols <= 0 || len(d.Real) != n {
		return nil, fmt.Errorf("%dx%d with %d real parts: %w", d.Rows, d.Cols, len(d.Real), ErrMalformedDocument)
	}
	if d.Imag != nil && len(d.Imag) != n {
		return nil, fmt.Errorf("%dx%d with %d imaginary parts: %w", d.Rows, d.Cols, len(d.Imag), ErrMalformedDocument)
	}
	data := make([]complex128, n)
	for k := range data {
		im := 0.0
		if d.Imag != nil {
			im = d.Imag[k]
		}
		data[k] = complex(d.Real[k], im)
	}

	return matrix.NewDenseFrom(d.Rows, d.Cols, data)
}

// WeightsDocument is the on-disk form of a weight vector; Modes is the d it
// was produced for.
type WeightsDocument struct {
	Modes   int       `json:"modes"`
	Weights []float64 `json:"weights"`
}

// Validate checks len(Weights) == Modes².
func (d WeightsDocument) Validate() error {
	if d.Modes < 1 || len(d.Weights) != d.Modes*d.Modes {
		return fmt.Errorf("%d weights for %d modes: %w", len(d.Weights), d.Modes, ErrMalformedDocument)
	}

	return nil
}
