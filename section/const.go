package section

// Magic tags identifying each sparsepix stream (first 4 bytes).
const (
	MagicCOO      = "SPCO" // MagicCOO tags a COO-binary stream.
	MagicCSR      = "SPCS" // MagicCSR tags a CSR-binary stream.
	MagicEnvelope = "SPZ1" // MagicEnvelope tags a compressed envelope around a COO/CSR stream.
)

// offsets and section sizes in the stream
const (
	MagicSize          = 4  // magic tag size in bytes
	COOHeaderSize      = 18 // fixed COO-binary header size in bytes
	CSRHeaderSize      = 26 // fixed CSR-binary header size in bytes
	EnvelopeHeaderSize = 18 // fixed envelope header size in bytes
	COORecordSize      = 12 // one (row, col, value) record in bytes
	ArrayElemSize      = 4  // one uint32 element of a CSR array in bytes
)

// HasMagic reports whether data starts with the given magic tag.
func HasMagic(data []byte, magic string) bool {
	return len(data) >= MagicSize && string(data[:MagicSize]) == magic
}
