// Package visitor defines the format neutral Visitor contract and the
// shape-specialized traversal that walks records, maps, slices, arrays,
// pointers and primitives through it.
//
// A traversal runs in one direction. A reading visitor answers Peek with the
// kind of the next input unit and drives Consume callbacks, one per child
// key, in source order. A writing visitor returns KindNone from Peek and
// false from Consume, in which case the dispatcher produces the value with
// ProduceStart, the children, and ProduceEnd. Leaf calls are identical in
// both directions.
//
// Record field tables come from bindly registries; shapes are resolved once
// per reflect.Type and cached for the process lifetime.
package visitor
