// Package inferskema infers a mongoose-style schema definition from a single
// sample document.
//
// - Each attribute of the sample is classified into one of eleven Kinds
// (String, Number, Date, Buffer, Boolean, Mixed, ObjectId, Array, Decimal128,
// Map, Object); nested documents become sub-trees
// - Optional attributes, defaults, strongly typed arrays and Decimal128
// promotion rules are controlled through Options
// - Cycles and excessive nesting fail with ErrCyclicStructure / ErrMaxDepth
// instead of recursing forever
//
// Design policy:
// - Keep the inference API in the root package; decoding lives under source/,
// exports under jsonschema/ and comparisons under drift/.
// - Samples are plain Go values. bson.D keeps attribute order, driver types
// (primitive.ObjectID, primitive.Decimal128, ...) select the specialised kinds.
//
// Typical usage:
//
//	v, err := source.Decode(data, source.FormatAuto, source.Options{})
//	tree, err := inferskema.Infer(v, inferskema.Options{StronglyTypeArrays: true})
//	def, err := inferskema.DefinitionJSON(tree, "  ")
package inferskema
