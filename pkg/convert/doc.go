// Package convert maps decoded layouts and slots to readable trees and
// back. Trees are JSON or YAML documents whose keys are the game's own
// field names. JSON input may carry comments and trailing commas.
//
// The package also owns the file-extension dispatch shared by the CLI,
// the watcher and the HTTP service.
package convert
