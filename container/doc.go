// Package container stores one or three sparse channel planes in a zip
// archive.
//
// An archive holds a JSON "_metadata" entry and, for every channel i, three
// little-endian uint32 arrays:
//
//	_metadata                      {"version":1,"format":"CSR","shape":[h,w],"dtype":"uint8","channels":3}
//	row_i     col_i     data_i     channel stored as COO (also used for DOK)
//	indptr_i  indices_i data_i     channel stored as CSR
//
// DOK channels are written as COO and converted back to DOK on read, so the
// caller gets the representation it saved. Archives written without the
// "channels" or "version" fields are read as single-channel version-0
// archives.
//
// Entries are compressed with Deflate by default. WithMethod selects Store or
// Zstandard (zip method 93) instead.
package container
