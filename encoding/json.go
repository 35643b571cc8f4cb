package encoding

import (
	"fmt"
	"io"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/sparse"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cooDocument is the JSON COO layout:
//
//	{"format":"COO","shape":[h,w],"data":[[r,c,v],...]}
//
// shape carries a third element for three-channel images.
type cooDocument struct {
	Format string    `json:"format"`
	Shape  []int     `json:"shape"`
	Data   [][]int64 `json:"data"`
}

// EncodeCOOJSON writes m as a JSON COO document in row-major order.
// Grayscale shapes are written as [h,w] and RGB shapes as [h,w,3].
func EncodeCOOJSON(w io.Writer, m sparse.Matrix) error {
	coo, err := toCanonicalCOO(m)
	if err != nil {
		return err
	}

	shape := coo.Shape()
	doc := cooDocument{
		Format: format.KindCOO.String(),
		Shape:  []int{shape.Height, shape.Width},
		Data:   make([][]int64, 0, coo.NNZ()),
	}
	if shape.Channels != 1 {
		doc.Shape = append(doc.Shape, shape.Channels)
	}

	for e := range coo.All() {
		doc.Data = append(doc.Data, []int64{int64(e.Row), int64(e.Col), int64(e.Value)})
	}

	return json.NewEncoder(w).Encode(&doc)
}

// DecodeCOOJSON reads a JSON COO document. A two-element shape means one
// channel.
//
// Returns:
//   - ErrInvalidKind when "format" is not COO
//   - ErrInvalidShape for a shape that is not [h,w] or [h,w,c]
//   - ErrShapeMismatch for a data entry that is not a [r,c,v] triple
//   - ErrOutOfRange, ErrInvalidValue for coordinates or values the COO rejects
func DecodeCOOJSON(r io.Reader) (*sparse.COO, error) {
	var doc cooDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON COO: %w", err)
	}

	if !strings.EqualFold(doc.Format, format.KindCOO.String()) {
		return nil, fmt.Errorf("%w: JSON format %q", errs.ErrInvalidKind, doc.Format)
	}

	var shape sparse.Shape
	switch len(doc.Shape) {
	case 2:
		shape = sparse.Shape{Height: doc.Shape[0], Width: doc.Shape[1], Channels: 1}
	case 3:
		shape = sparse.Shape{Height: doc.Shape[0], Width: doc.Shape[1], Channels: doc.Shape[2]}
	default:
		return nil, fmt.Errorf("%w: JSON shape %v", errs.ErrInvalidShape, doc.Shape)
	}

	rows := make([]uint32, len(doc.Data))
	cols := make([]uint32, len(doc.Data))
	values := make([]uint32, len(doc.Data))
	for i, triple := range doc.Data {
		if len(triple) != 3 {
			return nil, fmt.Errorf("%w: data[%d] has %d elements", errs.ErrShapeMismatch, i, len(triple))
		}

		for j, v := range triple {
			if v < 0 || v > math.MaxUint32 {
				return nil, fmt.Errorf("%w: data[%d][%d] = %d", errs.ErrOutOfRange, i, j, v)
			}
		}

		rows[i], cols[i], values[i] = uint32(triple[0]), uint32(triple[1]), uint32(triple[2]) //nolint:gosec
	}

	return sparse.NewCOO(shape, rows, cols, values)
}

func toCanonicalCOO(m sparse.Matrix) (*sparse.COO, error) {
	switch v := m.(type) {
	case *sparse.COO:
		return canonicalCOO(v)
	case *sparse.CSR:
		return sparse.CSRToCOO(v), nil
	case *sparse.DOK:
		return sparse.DOKToCOO(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrInvalidKind, m)
	}
}
