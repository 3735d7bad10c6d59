// Package compress restores cell payloads that a writer compressed before
// storing them.
//
// A field descriptor declares the compression its cells were written with;
// the field codec calls Decompress before type decoding:
//
//	raw, err := compress.Decompress(desc.Compression, cell)
//
// Supported types are None (and Default), Zstd, S2 and LZ4. Zstd uses
// klauspost/compress unless built with the gozstd tag and cgo, which switches
// to valyala/gozstd. No codec returns more than MaxDecodedCellSize bytes for
// one cell.
package compress
