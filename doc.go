// Package bindly provides per record type field tables used by reflection driven data binding.
//
// Members participating in binding are declared once per type, either with typed accessors
//
//	bindly.MustDeclare[Point](
//		bindly.Bind("x", func(p *Point) *int { return &p.X }),
//		bindly.Bind("y", func(p *Point) *int { return &p.Y }),
//	)
//
// with a declaration string (DeclareNames), or derived from exported struct fields (Derive).
// A type without declaration is derived on first registry use, after which it is sealed.
// Registries are built once, concurrently safe, and read only afterwards.
//
// The visitor package walks records using these registries, format collaborators live under encoding.
package bindly
