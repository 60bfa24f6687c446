// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface so encoders and decoders can take one
// value that supports both fixed-offset writes and append-style writes.
//
// The returned engines are the standard library's binary.LittleEndian and
// binary.BigEndian values; they are immutable, stateless, and safe for
// concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
