package tagged

import "fmt"

// Tag is the first byte of every entry on the wire.
type Tag uint8

const (
	TagInvalid                          Tag = 0x00
	TagNamedStartOfReferenceNode        Tag = 0x01
	TagUnnamedStartOfReferenceNode      Tag = 0x02
	TagNamedStartOfStructNode           Tag = 0x03
	TagUnnamedStartOfStructNode         Tag = 0x04
	TagEndOfNode                        Tag = 0x05
	TagStartOfArray                     Tag = 0x06
	TagEndOfArray                       Tag = 0x07
	TagPrimitiveArray                   Tag = 0x08
	TagNamedInternalReference           Tag = 0x09
	TagUnnamedInternalReference         Tag = 0x0A
	TagNamedExternalReferenceByIndex    Tag = 0x0B
	TagUnnamedExternalReferenceByIndex  Tag = 0x0C
	TagNamedExternalReferenceByGuid     Tag = 0x0D
	TagUnnamedExternalReferenceByGuid   Tag = 0x0E
	TagNamedSByte                       Tag = 0x0F
	TagUnnamedSByte                     Tag = 0x10
	TagNamedByte                        Tag = 0x11
	TagUnnamedByte                      Tag = 0x12
	TagNamedShort                       Tag = 0x13
	TagUnnamedShort                     Tag = 0x14
	TagNamedUShort                      Tag = 0x15
	TagUnnamedUShort                    Tag = 0x16
	TagNamedInt                         Tag = 0x17
	TagUnnamedInt                       Tag = 0x18
	TagNamedUInt                        Tag = 0x19
	TagUnnamedUInt                      Tag = 0x1A
	TagNamedLong                        Tag = 0x1B
	TagUnnamedLong                      Tag = 0x1C
	TagNamedULong                       Tag = 0x1D
	TagUnnamedULong                     Tag = 0x1E
	TagNamedFloat                       Tag = 0x1F
	TagUnnamedFloat                     Tag = 0x20
	TagNamedDouble                      Tag = 0x21
	TagUnnamedDouble                    Tag = 0x22
	TagNamedDecimal                     Tag = 0x23
	TagUnnamedDecimal                   Tag = 0x24
	TagNamedChar                        Tag = 0x25
	TagUnnamedChar                      Tag = 0x26
	TagNamedString                      Tag = 0x27
	TagUnnamedString                    Tag = 0x28
	TagNamedGuid                        Tag = 0x29
	TagUnnamedGuid                      Tag = 0x2A
	TagNamedBoolean                     Tag = 0x2B
	TagUnnamedBoolean                   Tag = 0x2C
	TagNamedNull                        Tag = 0x2D
	TagUnnamedNull                      Tag = 0x2E
	TagTypeName                         Tag = 0x2F
	TagTypeID                           Tag = 0x30
	TagEndOfStream                      Tag = 0x31
	TagNamedExternalReferenceByString   Tag = 0x32
	TagUnnamedExternalReferenceByString Tag = 0x33

	tagCount = 0x34
)

// Kind is the meaning of an entry once its wire variant is collapsed.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindGuid
	KindInteger
	KindFloatingPoint
	KindBoolean
	KindNull
	KindStartOfNode
	KindEndOfNode
	KindInternalReference
	KindExternalReferenceByIndex
	KindExternalReferenceByGuid
	KindStartOfArray
	KindEndOfArray
	KindPrimitiveArray
	KindEndOfStream
	KindExternalReferenceByString
)

var kindNames = [...]string{
	KindInvalid:                   "Invalid",
	KindString:                    "String",
	KindGuid:                      "Guid",
	KindInteger:                   "Integer",
	KindFloatingPoint:             "FloatingPoint",
	KindBoolean:                   "Boolean",
	KindNull:                      "Null",
	KindStartOfNode:               "StartOfNode",
	KindEndOfNode:                 "EndOfNode",
	KindInternalReference:         "InternalReference",
	KindExternalReferenceByIndex:  "ExternalReferenceByIndex",
	KindExternalReferenceByGuid:   "ExternalReferenceByGuid",
	KindStartOfArray:              "StartOfArray",
	KindEndOfArray:                "EndOfArray",
	KindPrimitiveArray:            "PrimitiveArray",
	KindEndOfStream:               "EndOfStream",
	KindExternalReferenceByString: "ExternalReferenceByString",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// tagInfo describes one wire tag. width is the payload size in bytes for
// fixed-width scalars, or 0 when the payload is variable or empty.
type tagInfo struct {
	kind     Kind
	named    bool
	width    int
	signed   bool
	isChar   bool
	typeDesc bool
}

// tags maps every defined wire tag; an entry with kind KindInvalid and no
// typeDesc flag is not a valid leading tag.
var tags = [tagCount]tagInfo{
	TagNamedStartOfReferenceNode:        {kind: KindStartOfNode, named: true},
	TagUnnamedStartOfReferenceNode:      {kind: KindStartOfNode},
	TagNamedStartOfStructNode:           {kind: KindStartOfNode, named: true},
	TagUnnamedStartOfStructNode:         {kind: KindStartOfNode},
	TagEndOfNode:                        {kind: KindEndOfNode},
	TagStartOfArray:                     {kind: KindStartOfArray},
	TagEndOfArray:                       {kind: KindEndOfArray},
	TagPrimitiveArray:                   {kind: KindPrimitiveArray},
	TagNamedInternalReference:           {kind: KindInternalReference, named: true},
	TagUnnamedInternalReference:         {kind: KindInternalReference},
	TagNamedExternalReferenceByIndex:    {kind: KindExternalReferenceByIndex, named: true},
	TagUnnamedExternalReferenceByIndex:  {kind: KindExternalReferenceByIndex},
	TagNamedExternalReferenceByGuid:     {kind: KindExternalReferenceByGuid, named: true},
	TagUnnamedExternalReferenceByGuid:   {kind: KindExternalReferenceByGuid},
	TagNamedSByte:                       {kind: KindInteger, named: true, width: 1, signed: true},
	TagUnnamedSByte:                     {kind: KindInteger, width: 1, signed: true},
	TagNamedByte:                        {kind: KindInteger, named: true, width: 1},
	TagUnnamedByte:                      {kind: KindInteger, width: 1},
	TagNamedShort:                       {kind: KindInteger, named: true, width: 2, signed: true},
	TagUnnamedShort:                     {kind: KindInteger, width: 2, signed: true},
	TagNamedUShort:                      {kind: KindInteger, named: true, width: 2},
	TagUnnamedUShort:                    {kind: KindInteger, width: 2},
	TagNamedInt:                         {kind: KindInteger, named: true, width: 4, signed: true},
	TagUnnamedInt:                       {kind: KindInteger, width: 4, signed: true},
	TagNamedUInt:                        {kind: KindInteger, named: true, width: 4},
	TagUnnamedUInt:                      {kind: KindInteger, width: 4},
	TagNamedLong:                        {kind: KindInteger, named: true, width: 8, signed: true},
	TagUnnamedLong:                      {kind: KindInteger, width: 8, signed: true},
	TagNamedULong:                       {kind: KindInteger, named: true, width: 8},
	TagUnnamedULong:                     {kind: KindInteger, width: 8},
	TagNamedFloat:                       {kind: KindFloatingPoint, named: true, width: 4},
	TagUnnamedFloat:                     {kind: KindFloatingPoint, width: 4},
	TagNamedDouble:                      {kind: KindFloatingPoint, named: true, width: 8},
	TagUnnamedDouble:                    {kind: KindFloatingPoint, width: 8},
	TagNamedDecimal:                     {kind: KindFloatingPoint, named: true, width: 16},
	TagUnnamedDecimal:                   {kind: KindFloatingPoint, width: 16},
	TagNamedChar:                        {kind: KindString, named: true, width: 2, isChar: true},
	TagUnnamedChar:                      {kind: KindString, width: 2, isChar: true},
	TagNamedString:                      {kind: KindString, named: true},
	TagUnnamedString:                    {kind: KindString},
	TagNamedGuid:                        {kind: KindGuid, named: true, width: 16},
	TagUnnamedGuid:                      {kind: KindGuid, width: 16},
	TagNamedBoolean:                     {kind: KindBoolean, named: true, width: 1},
	TagUnnamedBoolean:                   {kind: KindBoolean, width: 1},
	TagNamedNull:                        {kind: KindNull, named: true},
	TagUnnamedNull:                      {kind: KindNull},
	TagTypeName:                         {typeDesc: true},
	TagTypeID:                           {typeDesc: true},
	TagEndOfStream:                      {kind: KindEndOfStream},
	TagNamedExternalReferenceByString:   {kind: KindExternalReferenceByString, named: true},
	TagUnnamedExternalReferenceByString: {kind: KindExternalReferenceByString},
}

func lookup(t Tag) (tagInfo, bool) {
	if int(t) >= tagCount {
		return tagInfo{}, false
	}
	info := tags[t]
	return info, info.kind != KindInvalid || info.typeDesc
}

// Entry is a peeked entry header: its wire tag, kind and optional name.
type Entry struct {
	Tag  Tag
	Kind Kind
	Name string
}

// TypeRef is a type descriptor read when entering a node.
type TypeRef struct {
	Name     string
	Assembly string
}
