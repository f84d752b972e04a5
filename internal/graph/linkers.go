package graph

import "github.com/sourcegraph/should-be-public-checker/internal/rustdoc"

// Linker decides which local ids an item links to during one BFS hop. The
// two phases of the analysis (§4.F) use different linkers over the same
// BFS engine: the importable phase only follows containment and
// re-export edges (an item is importable if its declaration path is),
// while the visible phase drops the Module and Use edges and instead walks
// every type, generic bound and function signature an item mentions,
// because a type can be visible in
// documentation (named in a public function's signature, say) without
// itself being on any importable path.
type Linker interface {
	Neighbors(item rustdoc.Item) []rustdoc.LocalID
}

type importableLinker struct{}

// ImportableLinker implements the first BFS phase (§4.F): name-resolution
// reachability only.
var ImportableLinker Linker = importableLinker{}

func (importableLinker) Neighbors(item rustdoc.Item) []rustdoc.LocalID {
	return containmentNeighbors(item)
}

type visibleLinker struct{}

// VisibleLinker implements the second BFS phase (§4.F): ImportableLinker's
// containment edges except a Module's items and a Use's target, plus every
// type/trait/generic reference an item's signature mentions.
var VisibleLinker Linker = visibleLinker{}

func (visibleLinker) Neighbors(item rustdoc.Item) []rustdoc.LocalID {
	out := visibleContainmentNeighbors(item)
	out = append(out, typeWalkNeighbors(item)...)
	return out
}

func containmentNeighbors(item rustdoc.Item) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	switch item.Inner.Kind {
	case rustdoc.KindModule:
		out = append(out, item.Inner.Module.Items...)
	case rustdoc.KindUse:
		if item.Inner.Use.Target != nil {
			out = append(out, *item.Inner.Use.Target)
		}
	default:
		out = append(out, visibleContainmentNeighbors(item)...)
	}
	return out
}

// visibleContainmentNeighbors is the containment edge set shared by both
// phases -- everything except Module and Use, whose children are already
// importable on their own account and must not be re-discovered by the
// visible phase (§4.G: "Module, Use -> nothing (their children are already
// importable)"). The visible phase descending into a Module would walk
// straight into private submodules' contents regardless of whether any
// public signature actually references them.
func visibleContainmentNeighbors(item rustdoc.Item) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	switch item.Inner.Kind {
	case rustdoc.KindUnion:
		out = append(out, item.Inner.Union.Fields...)
		out = append(out, item.Inner.Union.Impls...)
	case rustdoc.KindStruct:
		out = append(out, structFieldIDs(item.Inner.Struct.Kind)...)
		out = append(out, item.Inner.Struct.Impls...)
	case rustdoc.KindEnum:
		out = append(out, item.Inner.Enum.Variants...)
		out = append(out, item.Inner.Enum.Impls...)
	case rustdoc.KindVariant:
		out = append(out, variantFieldIDs(item.Inner.Variant.Kind)...)
	case rustdoc.KindTrait:
		out = append(out, item.Inner.Trait.Items...)
	case rustdoc.KindImpl:
		out = append(out, item.Inner.Impl.Items...)
	}
	return out
}

func structFieldIDs(kind rustdoc.StructKind) []rustdoc.LocalID {
	switch kind.Tag {
	case rustdoc.StructKindTuple:
		var out []rustdoc.LocalID
		for _, f := range kind.TupleFields {
			if f != nil {
				out = append(out, *f)
			}
		}
		return out
	case rustdoc.StructKindPlain:
		return kind.PlainFields
	default:
		return nil
	}
}

func variantFieldIDs(kind rustdoc.VariantKind) []rustdoc.LocalID {
	switch kind.Tag {
	case rustdoc.VariantKindTuple:
		var out []rustdoc.LocalID
		for _, f := range kind.TupleFields {
			if f != nil {
				out = append(out, *f)
			}
		}
		return out
	case rustdoc.VariantKindStruct:
		return kind.StructFields
	default:
		return nil
	}
}

// typeWalkNeighbors implements the exhaustive type/generics/function
// signature walk (§4.G) used by the visible phase: every place a
// ResolvedPath or Path can appear in rustdoc's type model, except the
// generic parameter lists of higher-ranked binders (the `for<...>` on a
// where-predicate, a trait bound, a trait object or a function pointer),
// which are not walked. TraitAlias and ExternType items have no case here:
// they contribute no neighbors and raise no error.
func typeWalkNeighbors(item rustdoc.Item) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	add := func(ids ...rustdoc.LocalID) { out = append(out, ids...) }

	switch item.Inner.Kind {
	case rustdoc.KindStructField:
		add(walkType(*item.Inner.StructField)...)
	case rustdoc.KindUnion:
		add(walkGenerics(item.Inner.Union.Generics)...)
	case rustdoc.KindStruct:
		add(walkGenerics(item.Inner.Struct.Generics)...)
	case rustdoc.KindEnum:
		add(walkGenerics(item.Inner.Enum.Generics)...)
	case rustdoc.KindFunction:
		add(walkFunctionSignature(item.Inner.Function.Signature)...)
		add(walkGenerics(item.Inner.Function.Generics)...)
	case rustdoc.KindTrait:
		add(walkGenerics(item.Inner.Trait.Generics)...)
		add(walkGenericBounds(item.Inner.Trait.Bounds)...)
	case rustdoc.KindImpl:
		add(walkGenerics(item.Inner.Impl.Generics)...)
		if item.Inner.Impl.Trait != nil {
			add(walkPath(*item.Inner.Impl.Trait)...)
		}
		add(walkType(item.Inner.Impl.For)...)
	case rustdoc.KindTypeAlias:
		add(walkType(item.Inner.TypeAlias.Type)...)
		add(walkGenerics(item.Inner.TypeAlias.Generics)...)
	case rustdoc.KindConstant:
		add(walkType(item.Inner.Constant.Type)...)
	case rustdoc.KindStatic:
		add(walkType(item.Inner.Static.Type)...)
	case rustdoc.KindAssocConst:
		add(walkType(item.Inner.AssocConst.Type)...)
	case rustdoc.KindAssocType:
		add(walkGenerics(item.Inner.AssocType.Generics)...)
		add(walkGenericBounds(item.Inner.AssocType.Bounds)...)
		if item.Inner.AssocType.Type != nil {
			add(walkType(*item.Inner.AssocType.Type)...)
		}
	}
	return out
}

func walkFunctionSignature(sig rustdoc.FunctionSignature) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	for _, in := range sig.Inputs {
		out = append(out, walkType(in.Type)...)
	}
	if sig.Output != nil {
		out = append(out, walkType(*sig.Output)...)
	}
	return out
}

func walkGenerics(g rustdoc.Generics) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	for _, p := range g.Params {
		out = append(out, walkGenericBounds(p.Bounds)...)
		if p.Default != nil {
			out = append(out, walkType(*p.Default)...)
		}
	}
	for _, wp := range g.WherePredicates {
		switch wp.Tag {
		case rustdoc.WherePredicateBound:
			if wp.Type != nil {
				out = append(out, walkType(*wp.Type)...)
			}
			out = append(out, walkGenericBounds(wp.Bounds)...)
		case rustdoc.WherePredicateEq:
			if wp.LHS != nil {
				out = append(out, walkType(*wp.LHS)...)
			}
			if wp.RHS != nil {
				out = append(out, walkTerm(*wp.RHS)...)
			}
		}
	}
	return out
}

func walkGenericBounds(bounds []rustdoc.GenericBound) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	for _, b := range bounds {
		if b.Tag == rustdoc.GenericBoundTrait {
			out = append(out, walkPath(b.Trait)...)
		}
	}
	return out
}

func walkTerm(t rustdoc.Term) []rustdoc.LocalID {
	if t.Tag == rustdoc.TermType && t.Type != nil {
		return walkType(*t.Type)
	}
	return nil
}

func walkPath(p rustdoc.Path) []rustdoc.LocalID {
	out := []rustdoc.LocalID{p.ID}
	if p.Args != nil {
		out = append(out, walkGenericArgs(*p.Args)...)
	}
	return out
}

func walkGenericArgs(a rustdoc.GenericArgs) []rustdoc.LocalID {
	var out []rustdoc.LocalID
	switch a.Tag {
	case rustdoc.GenericArgsAngleBracketed:
		for _, arg := range a.Args {
			if arg.Tag == rustdoc.GenericArgType && arg.Type != nil {
				out = append(out, walkType(*arg.Type)...)
			}
		}
		for _, c := range a.Constraints {
			out = append(out, walkGenericArgs(c.Args)...)
			if c.Kind == rustdoc.AssocItemConstraintEquality && c.Term != nil {
				out = append(out, walkTerm(*c.Term)...)
			} else {
				out = append(out, walkGenericBounds(c.Bounds)...)
			}
		}
	case rustdoc.GenericArgsParenthesized:
		for _, in := range a.Inputs {
			out = append(out, walkType(in)...)
		}
		if a.Output != nil {
			out = append(out, walkType(*a.Output)...)
		}
	}
	return out
}

// walkType recurses through every Type variant rustdoc JSON can produce,
// collecting every id a path expression references. Generic, primitive,
// infer and pattern types reference no item and yield nothing.
func walkType(t rustdoc.Type) []rustdoc.LocalID {
	switch t.Tag {
	case rustdoc.TypeResolvedPath:
		if t.ResolvedPath != nil {
			return walkPath(*t.ResolvedPath)
		}
	case rustdoc.TypeDynTrait:
		var out []rustdoc.LocalID
		if t.DynTrait != nil {
			for _, pt := range t.DynTrait.Traits {
				out = append(out, walkPath(pt.Trait)...)
			}
		}
		return out
	case rustdoc.TypeFunctionPointer:
		if t.FunctionPointer != nil {
			return walkFunctionSignature(t.FunctionPointer.Signature)
		}
	case rustdoc.TypeTuple:
		var out []rustdoc.LocalID
		for _, inner := range t.Tuple {
			out = append(out, walkType(inner)...)
		}
		return out
	case rustdoc.TypeSlice:
		if t.Slice != nil {
			return walkType(*t.Slice)
		}
	case rustdoc.TypeArray:
		if t.Array != nil {
			return walkType(*t.Array)
		}
	case rustdoc.TypeImplTrait:
		return walkGenericBounds(t.ImplTrait)
	case rustdoc.TypeRawPointer:
		if t.RawPointer != nil {
			return walkType(*t.RawPointer)
		}
	case rustdoc.TypeBorrowedRef:
		if t.BorrowedRef != nil {
			return walkType(*t.BorrowedRef)
		}
	case rustdoc.TypeQualifiedPath:
		if t.QualifiedPath != nil {
			var out []rustdoc.LocalID
			out = append(out, walkGenericArgs(t.QualifiedPath.Args)...)
			out = append(out, walkType(t.QualifiedPath.SelfType)...)
			if t.QualifiedPath.Trait != nil {
				out = append(out, walkPath(*t.QualifiedPath.Trait)...)
			}
			return out
		}
	}
	return nil
}
