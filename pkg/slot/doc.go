// Package slot decodes save-slot files. A slot is a tagged-entry stream
// with a fixed field sequence; its bridge travels as an opaque primitive
// array that is decoded with the bridge codec.
package slot
