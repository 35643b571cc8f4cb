// Package compress provides the byte codecs applied to serialized sparse
// streams before they are sealed in an SPZ1 envelope.
//
// An image is reduced in two stages. Sparse extraction keeps only the
// non-background pixels as a DOK, COO or CSR matrix and serializes it as an
// SPCO or SPCS stream. This package implements the second stage, which
// compresses that stream with one of:
//
//   - None (RawCodec): the stream as is
//   - Zstd (ZstdCodec): best ratio
//   - S2 (S2Codec): between Zstd and LZ4
//   - LZ4 (LZ4Codec): fastest decode
//
// Codecs are looked up by compression type:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(stream)
//	stream, err = compress.DecompressSized(codec, packed, rawLen)
//
// COO streams repeat the row index of every record, so they gain more from
// compression than CSR streams, whose row pointers are already compact. For
// streams of a few dozen bytes the envelope header costs more than any codec
// saves.
//
// The pure-Go zstd implementation is the default. Building with -tags gozstd
// switches to the cgo binding; both produce standard frames.
package compress
