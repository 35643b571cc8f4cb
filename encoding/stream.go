package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/section"
)

// streamWriter appends fixed-width fields to a pooled buffer and flushes it
// to w whenever it reaches the streaming threshold.
type streamWriter struct {
	w      io.Writer
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	n      int64
	err    error
}

func newStreamWriter(w io.Writer) *streamWriter {
	return &streamWriter{
		w:      w,
		buf:    pool.GetStreamBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

func (sw *streamWriter) appendUint32(v uint32) {
	sw.buf.B = sw.engine.AppendUint32(sw.buf.B, v)
	sw.maybeFlush()
}

func (sw *streamWriter) appendUint32s(vals []uint32) {
	for _, v := range vals {
		sw.appendUint32(v)
	}
}

func (sw *streamWriter) maybeFlush() {
	if sw.buf.Len() >= pool.StreamBufferDefaultSize {
		sw.flush()
	}
}

func (sw *streamWriter) flush() {
	if sw.err != nil {
		sw.buf.Reset()
		return
	}

	n, err := sw.buf.Flush(sw.w)
	sw.n += n
	sw.err = err
}

// close flushes the remainder, releases the buffer and reports the bytes
// written and the first write error.
func (sw *streamWriter) close() (int64, error) {
	sw.flush()
	pool.PutStreamBuffer(sw.buf)
	sw.buf = nil

	return sw.n, sw.err
}

// readFull is io.ReadFull with short reads mapped to ErrTruncatedStream.
func readFull(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: reading %s", errs.ErrTruncatedStream, what)
		}

		return fmt.Errorf("reading %s: %w", what, err)
	}

	return nil
}

// readMagic reads the 4-byte tag into buf[:4] and checks it against magic.
func readMagic(r io.Reader, buf []byte, magic string) error {
	if err := readFull(r, buf[:section.MagicSize], "magic"); err != nil {
		return err
	}

	if string(buf[:section.MagicSize]) != magic {
		return fmt.Errorf("%w: got %q, want %q", errs.ErrBadMagic, buf[:section.MagicSize], magic)
	}

	return nil
}

// initialCap bounds the first allocation for a declared element count.
func initialCap(declared uint64) int {
	const maxInitial = pool.StreamBufferDefaultSize / 4

	return int(min(declared, maxInitial)) //nolint: gosec
}

// readUint32s reads count little-endian values in chunks and appends them to
// dst. The slice grows only as data arrives.
func readUint32s(r io.Reader, dst []uint32, count uint64, chunk []byte, what string) ([]uint32, error) {
	engine := endian.GetLittleEndianEngine()
	perChunk := uint64(len(chunk) / 4)

	for count > 0 {
		n := min(count, perChunk)
		b := chunk[:n*4]
		if err := readFull(r, b, what); err != nil {
			return nil, err
		}

		dst = endian.Uint32s(engine, dst, b)
		count -= n
	}

	return dst, nil
}
