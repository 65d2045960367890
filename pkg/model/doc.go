// Package model holds the in-memory representation of PolyBridge layout and
// save-slot files.
//
// Every type is a plain value aggregate. Parents hold children by value in
// ordered slices and cross references between entities are opaque GUID
// strings that are never resolved. Struct tags mirror the field names the
// game itself uses so the JSON and YAML trees produced by package convert
// can be read next to a game dump.
package model
