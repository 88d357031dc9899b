package inferskema

// Kind identifies the field type an attribute is classified into.
type Kind int

const (
	KindMixed      Kind = iota // Absent or unclassifiable values.
	KindString                 // Text.
	KindNumber                 // Native numbers, including *big.Int.
	KindDate                   // Timestamps.
	KindBuffer                 // Binary blobs.
	KindBoolean                // Booleans.
	KindObjectID               // 12-byte globally unique identifiers.
	KindArray                  // Ordered sequences.
	KindDecimal128             // High-precision decimals.
	KindMap                    // Key-value maps.
	KindObject                 // Nested objects (sub-trees).
)

var kindNames = [...]string{
	KindMixed:      "Mixed",
	KindString:     "String",
	KindNumber:     "Number",
	KindDate:       "Date",
	KindBuffer:     "Buffer",
	KindBoolean:    "Boolean",
	KindObjectID:   "ObjectId",
	KindArray:      "Array",
	KindDecimal128: "Decimal128",
	KindMap:        "Map",
	KindObject:     "Object",
}

// String returns the persistence type token for k (e.g. "ObjectId").
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Map marks a sample value as a key-value map rather than a nested object.
// Go maps other than map[string]any and bson.M are treated as key-value maps
// without the wrapper.
type Map map[string]any

// Options bundles inference options. The zero value infers every attribute as
// required, untyped arrays and no decimal promotion.
type Options struct {
	// OptionalAttributes lists top-level attribute names that are not
	// required. Names absent from the sample have no effect.
	OptionalAttributes []string
	// DefaultValues attaches defaults to top-level attributes verbatim.
	DefaultValues map[string]any
	// StronglyTypeArrays types non-empty arrays by their element type.
	StronglyTypeArrays bool
	// DecimalRules enables promotion of matching scalars to Decimal128.
	DecimalRules []DecimalRule
	// MaxDepth bounds the nesting depth below the sample (0 = unbounded).
	// Nested objects and, with StronglyTypeArrays, non-empty arrays each count
	// as one level: {a: [{b: 1}]} needs a MaxDepth of 2.
	MaxDepth int
}
