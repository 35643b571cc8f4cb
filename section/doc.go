// Package section defines the fixed-size headers of the sparsepix binary streams.
//
// Each header knows its own byte layout and round-trips through Parse and
// Bytes. Payload encoding lives in the encoding package; this package only
// handles the fixed prefix and its validation.
//
// # COO-binary (magic "SPCO")
//
//	Bytes  | Field    | Type   | Description
//	-------|----------|--------|----------------------------------
//	0-3    | Magic    | [4]    | Literal "SPCO"
//	4-7    | Height   | uint32 | Rows
//	8-11   | Width    | uint32 | Columns
//	12     | Channels | uint8  | 1 (gray) or 3 (RGB)
//	13     | Reserved | uint8  | Written as zero
//	14-17  | NNZ      | uint32 | Number of records that follow
//	18..   | Records  |        | NNZ x (row, col, value), each uint32
//
// # CSR-binary (magic "SPCS")
//
//	Bytes  | Field     | Type   | Description
//	-------|-----------|--------|----------------------------------
//	0-3    | Magic     | [4]    | Literal "SPCS"
//	4-7    | Height    | uint32 | Rows
//	8-11   | Width     | uint32 | Columns
//	12     | Channels  | uint8  | 1 (gray) or 3 (RGB)
//	13     | Reserved  | uint8  | Written as zero
//	14-17  | RowPtrLen | uint32 | Always Height+1
//	18-21  | ColIdxLen | uint32 | NNZ
//	22-25  | ValuesLen | uint32 | NNZ
//	26..   | Arrays    |        | rowPtr, colIdx, values as uint32 arrays
//
// # Envelope (magic "SPZ1")
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|----------------------------------
//	0-3    | Magic       | [4]    | Literal "SPZ1"
//	4      | Compression | uint8  | format.CompressionType of the payload
//	5      | Reserved    | uint8  | Written as zero
//	6-9    | RawLength   | uint32 | Length of the uncompressed inner stream
//	10-17  | Checksum    | uint64 | xxHash64 of the uncompressed inner stream
//	18..   | Payload     |        | Compressed SPCO or SPCS stream
//
// All multi-byte fields are little-endian.
package section
