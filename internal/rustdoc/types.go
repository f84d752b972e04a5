// Package rustdoc models the subset of the rustdoc JSON format (produced by
// `cargo doc` on the nightly toolchain with `--document-private-items`) that
// the reachability analysis needs: items, their declared visibility, and the
// shape of the types/traits/signatures that can reference other items.
//
// Field and variant names mirror rustdoc_types (the upstream Rust crate this
// schema is generated from) so a reader cross-referencing the rustdoc JSON
// format documentation can map names 1:1.
package rustdoc

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LocalID identifies an item within a single package's doc index. Rustdoc
// JSON ids are small integers clustered near zero within a crate, which is
// what lets the resolver use a dense slice instead of a map as its cache
// (see internal/graph).
type LocalID uint32

// ExternalPackageID identifies an entry in a DocIndex's Externals table.
type ExternalPackageID uint32

// VisibilityKind is the tag of Visibility.
type VisibilityKind int

const (
	VisibilityPublic VisibilityKind = iota
	VisibilityDefault
	VisibilityCrate
	VisibilityRestricted
)

// Visibility is an item's declared visibility.
type Visibility struct {
	Kind VisibilityKind
	// Parent/Path are only meaningful when Kind == VisibilityRestricted
	// (`pub(in path::to::mod)`); this analysis never needs to resolve a
	// restricted visibility's path, it only needs to know it isn't Public.
	Parent *LocalID
	Path   string
}

func (v Visibility) IsPublic() bool { return v.Kind == VisibilityPublic }

// Kind tags which field of ItemEnum is populated.
type Kind string

const (
	KindModule      Kind = "module"
	KindExternCrate Kind = "extern_crate"
	KindUse         Kind = "use"
	KindUnion       Kind = "union"
	KindStruct      Kind = "struct"
	KindStructField Kind = "struct_field"
	KindEnum        Kind = "enum"
	KindVariant     Kind = "variant"
	KindFunction    Kind = "function"
	KindTrait       Kind = "trait"
	KindTraitAlias  Kind = "trait_alias"
	KindImpl        Kind = "impl"
	KindTypeAlias   Kind = "type_alias"
	KindConstant    Kind = "constant"
	KindStatic      Kind = "static"
	KindAssocConst  Kind = "assoc_const"
	KindAssocType   Kind = "assoc_type"
	KindMacro       Kind = "macro"
	KindProcMacro   Kind = "proc_macro"
	KindPrimitive   Kind = "primitive"
	KindExternType  Kind = "extern_type"
)

// Item is a single declaration in a package's doc index.
type Item struct {
	ID         LocalID
	Name       *string
	Visibility Visibility
	Docs       *string
	Inner      ItemEnum
}

// ItemEnum is the externally-tagged union of everything an Item can be.
// Only the field matching Inner.Kind is populated; the rest are nil. This
// mirrors how rustdoc serializes its Rust enum (one JSON object key per
// variant) without requiring a full custom JSON decoder on this type --
// Decode (decode.go) does that translation once at load time.
type ItemEnum struct {
	Kind Kind

	Module      *Module
	ExternCrate *ExternCrate
	Use         *Use
	Union       *Union
	Struct      *Struct
	StructField *Type
	Enum        *Enum
	Variant     *Variant
	Function    *Function
	Trait       *Trait
	TraitAlias  *TraitAlias
	Impl        *Impl
	TypeAlias   *TypeAlias
	Constant    *Constant
	Static      *Static
	AssocConst  *AssocConst
	AssocType   *AssocType
	// Macro, ProcMacro, Primitive and ExternType carry no structured
	// payload the linkers need to walk; Kind alone distinguishes them.
}

type Module struct {
	IsCrate bool
	Items   []LocalID
}

type ExternCrate struct {
	Name   string
	Rename *string
}

type Use struct {
	Source  string
	Name    string
	Target  *LocalID
	IsGlob  bool
}

type Union struct {
	Generics Generics
	Fields   []LocalID
	Impls    []LocalID
}

type StructKindTag int

const (
	StructKindUnit StructKindTag = iota
	StructKindTuple
	StructKindPlain
)

type StructKind struct {
	Tag         StructKindTag
	TupleFields []*LocalID // StructKindTuple: one entry per field, nil if the field is stripped (private)
	PlainFields []LocalID  // StructKindPlain
}

type Struct struct {
	Kind     StructKind
	Generics Generics
	Impls    []LocalID
}

type Enum struct {
	Generics Generics
	Variants []LocalID
	Impls    []LocalID
}

type VariantKindTag int

const (
	VariantKindPlain VariantKindTag = iota
	VariantKindTuple
	VariantKindStruct
)

type VariantKind struct {
	Tag         VariantKindTag
	TupleFields []*LocalID
	StructFields []LocalID
}

type Variant struct {
	Kind VariantKind
}

type Function struct {
	Signature FunctionSignature
	Generics  Generics
}

type FunctionSignature struct {
	Inputs []FunctionParam
	Output *Type
}

type FunctionParam struct {
	Name string
	Type Type
}

type Trait struct {
	Items    []LocalID
	Generics Generics
	Bounds   []GenericBound
}

type TraitAlias struct{}

type Impl struct {
	Generics Generics
	Trait    *Path
	For      Type
	Items    []LocalID
}

type TypeAlias struct {
	Type     Type
	Generics Generics
}

type Constant struct {
	Type Type
}

type Static struct {
	Type Type
}

type AssocConst struct {
	Type Type
}

type AssocType struct {
	Generics Generics
	Bounds   []GenericBound
	Type     *Type
}

// Generics is the list of generic parameters and where-clauses declared by
// an item.
type Generics struct {
	Params          []GenericParamDef
	WherePredicates []WherePredicate
}

type GenericParamKindTag int

const (
	GenericParamLifetime GenericParamKindTag = iota
	GenericParamType
	GenericParamConst
)

type GenericParamDef struct {
	Name string
	Kind GenericParamKindTag
	// Bounds/Default are only meaningful when Kind == GenericParamType.
	Bounds  []GenericBound
	Default *Type
}

type WherePredicateTag int

const (
	WherePredicateBound WherePredicateTag = iota
	WherePredicateLifetime
	WherePredicateEq
)

type WherePredicate struct {
	Tag WherePredicateTag
	// BoundPredicate
	Type          *Type
	Bounds        []GenericBound
	GenericParams []GenericParamDef
	// EqPredicate
	LHS *Type
	RHS *Term
}

type TermTag int

const (
	TermType TermTag = iota
	TermConstant
)

type Term struct {
	Tag  TermTag
	Type *Type
}

type GenericBoundTag int

const (
	GenericBoundTrait GenericBoundTag = iota
	GenericBoundOutlives
	GenericBoundUse
)

type GenericBound struct {
	Tag           GenericBoundTag
	Trait         Path
	GenericParams []GenericParamDef
}

// Path is a reference to another item by id, optionally parameterized.
type Path struct {
	Name string
	ID   LocalID
	Args *GenericArgs
}

type GenericArgsTag int

const (
	GenericArgsAngleBracketed GenericArgsTag = iota
	GenericArgsParenthesized
)

type GenericArgs struct {
	Tag GenericArgsTag
	// AngleBracketed
	Args        []GenericArg
	Constraints []AssocItemConstraint
	// Parenthesized
	Inputs []Type
	Output *Type
}

type GenericArgTag int

const (
	GenericArgLifetime GenericArgTag = iota
	GenericArgType
	GenericArgConst
	GenericArgInfer
)

type GenericArg struct {
	Tag  GenericArgTag
	Type *Type
}

type AssocItemConstraintKindTag int

const (
	AssocItemConstraintEquality AssocItemConstraintKindTag = iota
	AssocItemConstraintBound
)

type AssocItemConstraint struct {
	Name    string
	Args    GenericArgs
	Kind    AssocItemConstraintKindTag
	Term    *Term
	Bounds  []GenericBound
}

// TypeTag tags which field of Type is populated.
type TypeTag int

const (
	TypeResolvedPath TypeTag = iota
	TypeDynTrait
	TypeGeneric
	TypePrimitive
	TypeFunctionPointer
	TypeTuple
	TypeSlice
	TypeArray
	TypePat
	TypeImplTrait
	TypeInfer
	TypeRawPointer
	TypeBorrowedRef
	TypeQualifiedPath
)

// Type is the externally-tagged union of every type expression rustdoc JSON
// can describe in a signature.
type Type struct {
	Tag TypeTag

	ResolvedPath *Path
	DynTrait     *DynTrait
	// Generic/Primitive carry only a name, irrelevant to reachability.

	FunctionPointer *FunctionPointer
	Tuple           []Type
	Slice           *Type
	Array           *Type

	ImplTrait []GenericBound

	RawPointer   *Type
	BorrowedRef  *Type

	QualifiedPath *QualifiedPath
}

type DynTrait struct {
	Traits []PolyTrait
}

type PolyTrait struct {
	Trait         Path
	GenericParams []GenericParamDef
}

type FunctionPointer struct {
	Signature     FunctionSignature
	GenericParams []GenericParamDef
}

type QualifiedPath struct {
	Args     GenericArgs
	SelfType Type
	Trait    *Path
}
