package convert

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a readable-tree encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// ParseFormat accepts json, jsonc, yaml and yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown tree format %q (want json or yaml)", s)
}

// String, Set and Type make *Format usable as a command-line flag.
func (f *Format) String() string {
	if *f == "" {
		return string(FormatJSON)
	}
	return string(*f)
}

func (f *Format) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	if v == FormatJSONC {
		return fmt.Errorf("jsonc is an input format only")
	}
	*f = v
	return nil
}

func (f *Format) Type() string {
	return "json|yaml"
}

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == "" {
		return string(FormatJSON)
	}
	return string(f)
}

// Kind classifies a file by its extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindLayout
	KindLayoutTree
	KindSlot
	KindSlotTree
)

func (k Kind) String() string {
	switch k {
	case KindLayout:
		return "layout"
	case KindLayoutTree:
		return "layout tree"
	case KindSlot:
		return "slot"
	case KindSlotTree:
		return "slot tree"
	}
	return "unknown"
}

// Binary reports whether files of kind k are game binaries.
func (k Kind) Binary() bool {
	return k == KindLayout || k == KindSlot
}

var treeExts = map[string]Format{
	".json":  FormatJSON,
	".jsonc": FormatJSONC,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
}

// Classify returns the kind of path and, for trees, its format.
func Classify(path string) (Kind, Format) {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	if f, ok := treeExts[ext]; ok {
		switch filepath.Ext(strings.TrimSuffix(name, ext)) {
		case ".layout":
			return KindLayoutTree, f
		case ".slot":
			return KindSlotTree, f
		}
		return KindUnknown, ""
	}
	switch ext {
	case ".layout":
		return KindLayout, ""
	case ".slot":
		return KindSlot, ""
	}
	return KindUnknown, ""
}

// OutputPath derives the default output of converting path: binaries gain
// the tree extension for f, trees lose theirs.
func OutputPath(path string, f Format) string {
	kind, _ := Classify(path)
	if kind.Binary() {
		return path + "." + f.Ext()
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
