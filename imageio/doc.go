// Package imageio converts between image files and sparse.Dense arrays.
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding supports
// every format except WebP, for which only a decoder exists.
//
// Pixels are read as 8-bit grayscale or 8-bit RGB. Alpha is dropped, and
// 16-bit samples are reduced to their high byte.
package imageio
