package bench

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/arloliu/sparsepix/encoding"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/internal/options"
	"github.com/arloliu/sparsepix/sparse"
)

// dokEntryBytes approximates the cost of one map entry: key, value and
// bucket overhead.
const dokEntryBytes = 16

// Result is the measurement of one representation.
type Result struct {
	Kind        format.Kind
	Compression format.CompressionType
	NNZ         int
	Density     float64
	SourceSize  int64
	EncodedSize int64
	MemoryBytes int64
	ConvertTime time.Duration
	DecodeTime  time.Duration
}

// Ratio returns SourceSize / EncodedSize, or +Inf when nothing was encoded.
func (r Result) Ratio() float64 {
	if r.EncodedSize == 0 {
		return math.Inf(1)
	}

	return float64(r.SourceSize) / float64(r.EncodedSize)
}

// Footprint estimates the bytes a matrix holds in memory.
func Footprint(m sparse.Matrix) int64 {
	nnz := int64(m.NNZ())

	switch m.Kind() {
	case format.KindDOK:
		return nnz * dokEntryBytes
	case format.KindCOO:
		return nnz * 12
	case format.KindCSR:
		return int64(m.Shape().Height+1)*4 + nnz*8
	default:
		return 0
	}
}

// Measure converts d to kind, encodes it, decodes it back to a dense array
// and reports the cost of each step. sourceSize is the size of the file d
// was loaded from and is the numerator of the ratio.
func Measure(d *sparse.Dense, sourceSize int64, kind format.Kind, opts ...Option) (Result, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Result{}, err
	}

	if !kind.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", errs.ErrInvalidKind, kind)
	}

	start := time.Now()
	dok, err := sparse.DenseToDOK(d, cfg.background)
	if err != nil {
		return Result{}, err
	}

	m, err := sparse.ToKind(dok, kind)
	if err != nil {
		return Result{}, err
	}
	convertTime := time.Since(start)

	var buf bytes.Buffer
	if cfg.compression == format.CompressionNone {
		_, err = encoding.Encode(&buf, m)
	} else {
		_, err = encoding.Seal(&buf, m, cfg.compression)
	}
	if err != nil {
		return Result{}, err
	}
	encodedSize := int64(buf.Len())

	start = time.Now()
	decoded, err := encoding.Decode(&buf)
	if err != nil {
		return Result{}, err
	}
	restored := decoded.ToDense()
	decodeTime := time.Since(start)

	if decoded.NNZ() != m.NNZ() {
		return Result{}, fmt.Errorf("%w: decoded %d entries, encoded %d", errs.ErrShapeMismatch, decoded.NNZ(), m.NNZ())
	}

	res := Result{
		Kind:        kind,
		Compression: cfg.compression,
		NNZ:         m.NNZ(),
		Density:     float64(m.NNZ()) / float64(d.Shape.Cells()),
		SourceSize:  sourceSize,
		EncodedSize: encodedSize,
		MemoryBytes: Footprint(m),
		ConvertTime: convertTime,
		DecodeTime:  decodeTime,
	}

	logging.Logger().Debug("measured representation",
		"kind", kind.String(),
		"nnz", res.NNZ,
		"encoded_bytes", res.EncodedSize,
		"ratio", res.Ratio(),
		"restored_shape", restored.Shape.String(),
	)

	return res, nil
}

// Run measures every representation kind in the order of format.Kinds.
func Run(d *sparse.Dense, sourceSize int64, opts ...Option) ([]Result, error) {
	results := make([]Result, 0, len(format.Kinds))
	for _, kind := range format.Kinds {
		res, err := Measure(d, sourceSize, kind, opts...)
		if err != nil {
			return nil, fmt.Errorf("measuring %s: %w", kind, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// WriteTable prints results as an aligned table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tCOMPRESSION\tNNZ\tDENSITY\tCONVERT\tDECODE\tMEMORY (KB)\tENCODED (B)\tRATIO")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%s\t%s\t%.2f\t%d\t%.2fx\n",
			r.Kind, r.Compression, r.NNZ, r.Density,
			r.ConvertTime.Round(time.Microsecond), r.DecodeTime.Round(time.Microsecond),
			float64(r.MemoryBytes)/1024, r.EncodedSize, r.Ratio())
	}

	return tw.Flush()
}
