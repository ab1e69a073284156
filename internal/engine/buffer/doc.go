// Package buffer provides the thread-safe text store and the position
// types used throughout the editing engine.
//
// The package provides:
//
//   - ByteOffset and Point, the two coordinate systems, with conversions
//   - A line-indexed Buffer with thread-safe read/write access
//   - The TextBuffer interface consumed by the engine components
//   - Edit and Change records for describing and inverting mutations
//   - Line ending normalization and revision tracking
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Delete(0, 7)            // "Beautiful World!"
//
// Positions:
//
// ByteOffset is a raw byte position into the buffer and is the sole
// position representation used by the editing core. Point is a 0-indexed
// line/column pair with the column measured in bytes. Mutation offsets
// are validated and return errors; read and conversion requests clamp to
// the valid range instead.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read
// lock, write operations an exclusive lock. The editing core itself is
// single-threaded; the lock exists for the surrounding application's
// render path.
package buffer
