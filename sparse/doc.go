// Package sparse provides the sparse pixel-matrix representations used by
// sparsepix and the lossless conversions between them and a dense array.
//
// # Representations
//
// Three concrete representations share the read-only Matrix interface:
//
//   - DOK (dictionary of keys): a hash map from (row, col) to value. It is the
//     only mutable representation and implements MutableMatrix.
//   - COO (coordinate list): parallel row/col/value arrays. Built from DOK in
//     canonical row-major order.
//   - CSR (compressed sparse row): row pointers plus per-row sorted column
//     indices and values. Read-optimized.
//
// All representations store only non-zero values. For three-channel images a
// value is the packed 24-bit RGB scalar produced by the pixel package.
//
// # Conversions
//
// Conversion logic lives only in this package:
//
//	dok, _ := sparse.DenseToDOK(img, 0)
//	coo := sparse.DOKToCOO(dok)
//	csr, _ := sparse.COOToCSR(coo)
//	back := csr.ToDense() // equal to img
//
// ToKind converts any Matrix to a requested format.Kind in one dispatch and is
// what the transform and container packages use to restore a caller's kind.
//
// # Thread Safety
//
// COO and CSR values are immutable after construction and safe for concurrent
// reads. DOK is not safe for concurrent mutation.
package sparse
