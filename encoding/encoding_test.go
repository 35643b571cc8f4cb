package encoding

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/arloliu/sparsepix/compress"
	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
	"github.com/stretchr/testify/require"
)

func scenarioDOK(t testing.TB) *sparse.DOK {
	t.Helper()

	dok, err := sparse.NewDOK(sparse.Shape{Height: 4, Width: 4, Channels: 1})
	require.NoError(t, err)
	require.NoError(t, dok.Set(0, 0, 10))
	require.NoError(t, dok.Set(1, 2, 20))
	require.NoError(t, dok.Set(3, 3, 30))

	return dok
}

func randomDOK(t testing.TB, shape sparse.Shape, density float64, seed uint64) *sparse.DOK {
	t.Helper()

	dok, err := sparse.NewDOK(shape)
	require.NoError(t, err)

	maxValue := uint32(0xFF)
	if shape.Channels == 3 {
		maxValue = 1<<24 - 1
	}

	rng := rand.New(rand.NewPCG(seed, seed+1))
	for r := range shape.Height {
		for c := range shape.Width {
			if rng.Float64() < density {
				require.NoError(t, dok.Set(r, c, 1+rng.Uint32N(maxValue)))
			}
		}
	}

	return dok
}

// fixtures returns empty, singleton and saturated matrices.
func fixtures(t *testing.T) map[string]*sparse.DOK {
	t.Helper()

	empty, err := sparse.NewDOK(sparse.Shape{Height: 3, Width: 2, Channels: 1})
	require.NoError(t, err)

	single, err := sparse.NewDOK(sparse.Shape{Height: 1, Width: 1, Channels: 3})
	require.NoError(t, err)
	require.NoError(t, single.Set(0, 0, 660510))

	return map[string]*sparse.DOK{
		"empty":     empty,
		"singleton": single,
		"saturated": randomDOK(t, sparse.Shape{Height: 9, Width: 13, Channels: 1}, 1, 3),
		"large":     randomDOK(t, sparse.Shape{Height: 300, Width: 200, Channels: 3}, 0.2, 4),
		"scenario":  scenarioDOK(t),
	}
}

func TestEncodeCOO_Layout(t *testing.T) {
	var buf bytes.Buffer
	n, err := EncodeCOO(&buf, sparse.DOKToCOO(scenarioDOK(t)))
	require.NoError(t, err)
	require.Equal(t, int64(18+3*12), n)

	want := []byte{
		'S', 'P', 'C', 'O',
		4, 0, 0, 0, // height
		4, 0, 0, 0, // width
		1, 0, // channels, reserved
		3, 0, 0, 0, // nnz
		0, 0, 0, 0, 0, 0, 0, 0, 10, 0, 0, 0,
		1, 0, 0, 0, 2, 0, 0, 0, 20, 0, 0, 0,
		3, 0, 0, 0, 3, 0, 0, 0, 30, 0, 0, 0,
	}
	require.Equal(t, want, buf.Bytes())
}

func TestEncodeCSR_Layout(t *testing.T) {
	csr, err := sparse.DOKToCSR(scenarioDOK(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := EncodeCSR(&buf, csr)
	require.NoError(t, err)
	require.Equal(t, int64(26+(5+3+3)*4), n)

	data := buf.Bytes()
	require.Equal(t, "SPCS", string(data[:4]))
	require.Equal(t, []byte{5, 0, 0, 0, 3, 0, 0, 0, 3, 0, 0, 0}, data[14:26])
	require.Equal(t, []byte{0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}, data[26:46])
}

func TestBinary_RoundTrip(t *testing.T) {
	for name, dok := range fixtures(t) {
		t.Run(name+"/COO", func(t *testing.T) {
			var buf bytes.Buffer
			n, err := Encode(&buf, dok)
			require.NoError(t, err)
			require.Equal(t, int64(buf.Len()), n)
			require.Equal(t, int64(section.COOHeaderSize+dok.NNZ()*section.COORecordSize), n)

			got, err := DecodeCOO(&buf)
			require.NoError(t, err)
			require.Equal(t, dok.NNZ(), got.NNZ())
			require.True(t, sparse.Equal(dok, got))
			require.True(t, got.ToDense().Equal(dok.ToDense()))
		})

		t.Run(name+"/CSR", func(t *testing.T) {
			csr, err := sparse.DOKToCSR(dok)
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = Encode(&buf, csr)
			require.NoError(t, err)

			got, err := DecodeCSR(&buf)
			require.NoError(t, err)
			require.Equal(t, csr.RowPtr(), got.RowPtr())
			require.Equal(t, csr.ColIdx(), got.ColIdx())
			require.Equal(t, csr.Values(), got.Values())
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	dok := randomDOK(t, sparse.Shape{Height: 40, Width: 40, Channels: 1}, 0.3, 9)

	var a, b bytes.Buffer
	_, err := Encode(&a, dok)
	require.NoError(t, err)
	_, err = Encode(&b, dok.Clone())
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())

	// an unordered COO encodes to the same bytes as its canonical form
	shape := sparse.Shape{Height: 4, Width: 4, Channels: 1}
	unordered, err := sparse.NewCOO(shape, []uint32{3, 0, 1}, []uint32{3, 0, 2}, []uint32{30, 10, 20})
	require.NoError(t, err)

	var c, d bytes.Buffer
	_, err = Encode(&c, unordered)
	require.NoError(t, err)
	_, err = Encode(&d, scenarioDOK(t))
	require.NoError(t, err)
	require.Equal(t, d.Bytes(), c.Bytes())
}

func TestDecode_Errors(t *testing.T) {
	var coo bytes.Buffer
	_, err := Encode(&coo, scenarioDOK(t))
	require.NoError(t, err)

	csr, err := sparse.DOKToCSR(scenarioDOK(t))
	require.NoError(t, err)
	var csrBuf bytes.Buffer
	_, err = Encode(&csrBuf, csr)
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		_, err := DecodeCOO(bytes.NewReader(csrBuf.Bytes()))
		require.ErrorIs(t, err, errs.ErrBadMagic)

		_, err = DecodeCSR(bytes.NewReader(coo.Bytes()))
		require.ErrorIs(t, err, errs.ErrBadMagic)

		_, err = Decode(strings.NewReader("PNG\x89 not sparse"))
		require.ErrorIs(t, err, errs.ErrBadMagic)
	})

	t.Run("truncated", func(t *testing.T) {
		data := coo.Bytes()
		for _, cut := range []int{0, 2, 10, 18, 25, len(data) - 1} {
			_, err := Decode(bytes.NewReader(data[:cut]))
			require.ErrorIs(t, err, errs.ErrTruncatedStream, "cut at %d", cut)
		}

		data = csrBuf.Bytes()
		for _, cut := range []int{5, 26, 30, len(data) - 1} {
			_, err := DecodeCSR(bytes.NewReader(data[:cut]))
			require.ErrorIs(t, err, errs.ErrTruncatedStream, "cut at %d", cut)
		}
	})

	t.Run("forged nnz", func(t *testing.T) {
		header := section.COOHeader{Height: 4, Width: 4, Channels: 1, NNZ: 1 << 31}
		data := append(header.Bytes(), make([]byte, 24)...)

		_, err := DecodeCOO(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("csr length mismatch", func(t *testing.T) {
		data := bytes.Clone(csrBuf.Bytes())
		data[14] = 4 // rowPtrLen != height+1

		_, err := DecodeCSR(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)

		data = bytes.Clone(csrBuf.Bytes())
		data[18] = 2 // colIdxLen != valuesLen

		_, err = DecodeCSR(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("forged shape", func(t *testing.T) {
		coo := section.COOHeader{Height: 0xFFFFFFFE, Width: 0xFFFFFFFF, Channels: 3}
		_, err := Decode(bytes.NewReader(coo.Bytes()))
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		wide := section.COOHeader{Height: 1 << 16, Width: 1 << 16, Channels: 1}
		_, err = Decode(bytes.NewReader(wide.Bytes()))
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		csr := section.CSRHeader{Height: 0xFFFFFFFE, Width: 0xFFFFFFFF, Channels: 3, RowPtrLen: 0xFFFFFFFF}
		_, err = Decode(bytes.NewReader(csr.Bytes()))
		require.ErrorIs(t, err, errs.ErrInvalidShape)
	})

	t.Run("row pointer past nnz", func(t *testing.T) {
		header := section.CSRHeader{Height: 2, Width: 4, Channels: 1, RowPtrLen: 3, ColIdxLen: 1, ValuesLen: 1}
		data := endian.AppendUint32s(endian.GetLittleEndianEngine(), header.Bytes(), []uint32{0, 5, 1, 1, 7})

		_, err := Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("invalid content", func(t *testing.T) {
		data := bytes.Clone(coo.Bytes())
		data[12] = 2 // two channels

		_, err := DecodeCOO(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidShape)

		data = bytes.Clone(coo.Bytes())
		data[18] = 9 // row 9 in a 4x4 image

		_, err = DecodeCOO(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	})
}

func TestDecode_Dispatch(t *testing.T) {
	dok := scenarioDOK(t)

	for _, kind := range []format.Kind{format.KindCOO, format.KindCSR} {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := sparse.ToKind(dok, kind)
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = Encode(&buf, m)
			require.NoError(t, err)

			streamKind, err := StreamKind(buf.Bytes()[:4])
			require.NoError(t, err)
			require.Equal(t, kind, streamKind)

			got, err := Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, kind, got.Kind())
			require.True(t, sparse.Equal(dok, got))
		})
	}
}

func TestEnvelope(t *testing.T) {
	dok := randomDOK(t, sparse.Shape{Height: 128, Width: 96, Channels: 1}, 0.05, 5)
	csr, err := sparse.DOKToCSR(dok)
	require.NoError(t, err)

	var raw bytes.Buffer
	_, err = Encode(&raw, csr)
	require.NoError(t, err)

	compressions := []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			n, err := Seal(&buf, csr, ct)
			require.NoError(t, err)
			require.Equal(t, int64(buf.Len()), n)
			require.True(t, section.HasMagic(buf.Bytes(), section.MagicEnvelope))

			if ct != format.CompressionNone {
				require.Less(t, buf.Len(), raw.Len())
			}

			got, err := Decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.Equal(t, format.KindCSR, got.Kind())
			require.True(t, sparse.Equal(csr, got))
		})
	}

	t.Run("checksum mismatch", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Seal(&buf, csr, format.CompressionNone)
		require.NoError(t, err)

		data := buf.Bytes()
		data[len(data)-1] ^= 0xFF

		_, err = Open(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated payload", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Seal(&buf, csr, format.CompressionNone)
		require.NoError(t, err)

		_, err = Open(bytes.NewReader(buf.Bytes()[:buf.Len()-4]))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)

		_, err = Open(bytes.NewReader(buf.Bytes()[:10]))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("payload larger than declared", func(t *testing.T) {
		packed, err := compress.NewZstdCodec().Compress(make([]byte, 8<<20))
		require.NoError(t, err)

		header := section.EnvelopeHeader{Compression: format.CompressionZstd, RawLength: 64}
		data := append(header.Bytes(), packed...)

		_, err = Open(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("invalid compression", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := Seal(&buf, csr, format.CompressionType(7))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)

		_, err = Seal(&buf, csr, format.CompressionZstd)
		require.NoError(t, err)
		data := buf.Bytes()
		data[4] = 0x7

		_, err = Open(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("not an envelope", func(t *testing.T) {
		_, err := Open(bytes.NewReader(raw.Bytes()))
		require.ErrorIs(t, err, errs.ErrBadMagic)
	})
}

func TestJSON(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeCOOJSON(&buf, scenarioDOK(t)))
		require.JSONEq(t,
			`{"format":"COO","shape":[4,4],"data":[[0,0,10],[1,2,20],[3,3,30]]}`,
			buf.String())
	})

	for name, dok := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeCOOJSON(&buf, dok))

			got, err := DecodeCOOJSON(&buf)
			require.NoError(t, err)
			require.Equal(t, dok.Shape(), got.Shape())
			require.True(t, got.Canonical())
			require.True(t, sparse.Equal(dok, got))
		})
	}

	t.Run("rgb shape", func(t *testing.T) {
		got, err := DecodeCOOJSON(strings.NewReader(`{"format":"coo","shape":[2,2,3],"data":[[1,1,660510]]}`))
		require.NoError(t, err)
		require.Equal(t, sparse.Shape{Height: 2, Width: 2, Channels: 3}, got.Shape())

		v, err := got.At(1, 1)
		require.NoError(t, err)
		require.Equal(t, uint32(660510), v)
	})

	t.Run("errors", func(t *testing.T) {
		cases := map[string]error{
			`{"format":"CSR","shape":[2,2],"data":[]}`:          errs.ErrInvalidKind,
			`{"format":"COO","shape":[2],"data":[]}`:            errs.ErrInvalidShape,
			`{"format":"COO","shape":[2,2,2],"data":[]}`:        errs.ErrInvalidShape,
			`{"format":"COO","shape":[2,2],"data":[[0,0]]}`:     errs.ErrShapeMismatch,
			`{"format":"COO","shape":[2,2],"data":[[0,-1,5]]}`:  errs.ErrOutOfRange,
			`{"format":"COO","shape":[2,2],"data":[[2,0,5]]}`:   errs.ErrOutOfRange,
			`{"format":"COO","shape":[2,2],"data":[[0,0,256]]}`: errs.ErrInvalidValue,
		}

		for doc, want := range cases {
			_, err := DecodeCOOJSON(strings.NewReader(doc))
			require.ErrorIs(t, err, want, doc)
		}

		_, err := DecodeCOOJSON(strings.NewReader(`{"format":`))
		require.Error(t, err)
	})
}

func BenchmarkEncodeCOO(b *testing.B) {
	coo := sparse.DOKToCOO(randomDOK(b, sparse.Shape{Height: 512, Width: 512, Channels: 1}, 0.05, 11))

	b.ReportAllocs()
	for b.Loop() {
		var buf bytes.Buffer
		if _, err := EncodeCOO(&buf, coo); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeCSR(b *testing.B) {
	csr, err := sparse.DOKToCSR(randomDOK(b, sparse.Shape{Height: 512, Width: 512, Channels: 1}, 0.05, 12))
	require.NoError(b, err)

	var buf bytes.Buffer
	_, err = EncodeCSR(&buf, csr)
	require.NoError(b, err)
	data := buf.Bytes()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := DecodeCSR(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
