// Package encoding serializes sparse matrices to and from byte streams.
//
// Three stream formats are supported:
//
//   - COO-binary ("SPCO"): an 18-byte header followed by nnz fixed 12-byte
//     (row, col, value) records in row-major order.
//   - CSR-binary ("SPCS"): a 26-byte header followed by the row pointer,
//     column index and value arrays.
//   - SPZ1 envelope: a COO or CSR stream compressed with one of the codecs of
//     the compress package and protected by an xxHash64 checksum.
//
// plus a human-readable JSON variant of COO. The header layouts are defined
// in the section package.
//
// # Streaming
//
// Encoders write through a pooled 16KiB buffer that is flushed to the
// destination whenever it fills, so encoding memory stays constant beyond the
// matrix itself. Decoders read records in 16KiB chunks and grow their output
// slices as data actually arrives, so a forged header cannot force a large
// allocation.
//
// Encoding the same matrix always produces identical bytes: DOK and
// non-canonical COO inputs are reordered to row-major order first.
//
// # Decoding
//
// Decode sniffs the magic tag and dispatches:
//
//	m, err := encoding.Decode(r)
//	switch {
//	case errors.Is(err, errs.ErrBadMagic):
//	    // not a sparsepix stream
//	case errors.Is(err, errs.ErrTruncatedStream):
//	    // header declares more data than the stream holds
//	}
//
// Decoded matrices go through sparse.NewCOO or sparse.NewCSR, so every
// structural invariant is checked before a matrix is returned.
package encoding
