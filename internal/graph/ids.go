package graph

import "github.com/sourcegraph/should-be-public-checker/internal/rustdoc"

// AbsID is an item id qualified by which package it belongs to. Rustdoc
// JSON ids are only unique within one package's doc index; every id the
// Resolver and BFS Engine pass around is an AbsID so ids from different
// packages can never be confused for each other.
type AbsID struct {
	Package PackageID
	Local   rustdoc.LocalID
}

// CanonID is an AbsID known to already be resolved: the target of a `use`
// chain, not the `use` item itself. The Resolver is the only thing allowed
// to manufacture one from an arbitrary AbsID; everything downstream (the
// Namespace Builder, BFS Engine, Linkers) only ever stores and compares
// CanonIDs.
type CanonID = AbsID

// ModuleID is an AbsID known to name a Module item.
type ModuleID = AbsID

// SamePackage reports whether a and b come from the same loaded package.
func SamePackage(a, b AbsID) bool {
	return a.Package == b.Package
}
