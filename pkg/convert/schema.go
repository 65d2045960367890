package convert

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/ssargent/polyparser/pkg/model"
)

// Schema returns the JSON Schema describing trees of kind k.
func Schema(k Kind) (*jsonschema.Schema, error) {
	var (
		typ   reflect.Type
		title string
	)
	switch k {
	case KindLayout, KindLayoutTree:
		typ, title = reflect.TypeOf(model.Layout{}), "PolyBridge Layout"
	case KindSlot, KindSlotTree:
		typ, title = reflect.TypeOf(model.SaveSlot{}), "PolyBridge Save Slot"
	default:
		return nil, fmt.Errorf("no schema for %s files", k)
	}

	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
	}
	schema := reflector.ReflectFromType(typ)
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect %s schema", k)
	}
	schema.Title = title
	return schema, nil
}

// SchemaJSON renders Schema(k) as indented JSON.
func SchemaJSON(k Kind) ([]byte, error) {
	schema, err := Schema(k)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
