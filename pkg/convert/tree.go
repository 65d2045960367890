package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTree marks readable-tree input that cannot be parsed.
var ErrInvalidTree = errors.New("invalid readable tree")

// DefaultIndent is the indent width used when none is configured.
const DefaultIndent = 2

// Marshal renders v as a tree in format f. YAML output keeps the field
// order and byte encoding of the JSON form. NaN and infinite floats are
// written as the strings "NaN", "Infinity" and "-Infinity".
func Marshal(v any, f Format, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f != FormatYAML {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		var unsupported *json.UnsupportedValueError
		if !errors.As(err, &unsupported) {
			return nil, fmt.Errorf("%w: %w", codec.ErrUnencodable, err)
		}
		buf.Reset()
		if err := enc.Encode(finiteValue(reflect.ValueOf(v))); err != nil {
			return nil, fmt.Errorf("%w: %w", codec.ErrUnencodable, err)
		}
	}
	if f != FormatYAML {
		return buf.Bytes(), nil
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	node, err := yamlNode(dec)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	ye := yaml.NewEncoder(&out)
	ye.SetIndent(indent)
	if err := ye.Encode(node); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrUnencodable, err)
	}
	if err := ye.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// yamlNode rebuilds the next JSON value as a YAML node.
func yamlNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v == '{' {
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
		}
		for dec.More() {
			if n.Kind == yaml.MappingNode {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, scalar("!!str", key.(string)))
			}
			child, err := yamlNode(dec)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return scalar("!!str", v), nil
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return scalar("!!float", v.String()), nil
		}
		return scalar("!!int", v.String()), nil
	case bool:
		if v {
			return scalar("!!bool", "true"), nil
		}
		return scalar("!!bool", "false"), nil
	default:
		return scalar("!!null", "null"), nil
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Unmarshal parses a tree in format f into v.
func Unmarshal(data []byte, f Format, v any) error {
	var js []byte
	switch f {
	case FormatYAML:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTree, err)
		}
		b, err := json.Marshal(generic)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTree, err)
		}
		js = b
	case FormatJSONC:
		js = jsonc.ToJSON(data)
	default:
		js = data
	}

	dec := json.NewDecoder(bytes.NewReader(js))
	err := dec.Decode(v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		err = decodeNonFinite(js, v, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after document", ErrInvalidTree)
	}
	return nil
}

// UnmarshalLayout parses a layout tree.
func UnmarshalLayout(data []byte, f Format) (*model.Layout, error) {
	var l model.Layout
	if err := Unmarshal(data, f, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
