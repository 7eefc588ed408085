// Package state provides dotted path access to registry fields of a record.
//
// Selectors are built from the record registry and nested record registries,
// "Bar.Foo.Name" style paths use wire names. Setting a value allocates nil
// references on the path and updates presence markers of every holder.
package state
