// Package layout reads and writes .layout files.
//
// A layout is a flat sequence of little-endian fields whose presence
// depends on the version stored in the first four bytes. Every version
// test goes through Schema.Has and the table in schema.go, so a version
// boundary is one entry in that table. Decoding accepts every version up
// to MaxLayoutVersion (newer files decode with a warning). Encoding always
// produces MaxLayoutVersion.
//
// A negative stored version marks a layout saved with the PolyTech mod
// framework; its absolute value is the real version and a mod data
// trailer follows the last section.
package layout
