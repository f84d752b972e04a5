package rustdoc

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Decode parses a full rustdoc JSON document (the output of `cargo doc
// --output-format json`) into a DocIndex. It is the only place in this
// package that knows about rustdoc's externally-tagged-enum wire encoding;
// everything in internal/graph works against the plain Go types in types.go
// and index.go.
func Decode(data []byte) (*DocIndex, error) {
	var wire struct {
		Root            stdjson.Number                `json:"root"`
		Index           map[string]stdjson.RawMessage `json:"index"`
		Paths           map[string]stdjson.RawMessage `json:"paths"`
		ExternalCrates  map[string]stdjson.RawMessage `json:"external_crates"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "decoding rustdoc json")
	}

	root, err := parseLocalID(string(wire.Root))
	if err != nil {
		return nil, errors.Wrap(err, "root id")
	}

	idx := &DocIndex{
		Root:      root,
		Items:     make(map[LocalID]Item, len(wire.Index)),
		Paths:     make(map[LocalID]ItemSummary, len(wire.Paths)),
		Externals: make(map[ExternalPackageID]ExternalCrate, len(wire.ExternalCrates)),
	}

	for k, raw := range wire.Index {
		id, err := parseLocalID(k)
		if err != nil {
			return nil, errors.Wrapf(err, "index key %q", k)
		}
		item, err := decodeItem(id, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", id)
		}
		idx.Items[id] = item
	}

	for k, raw := range wire.Paths {
		id, err := parseLocalID(k)
		if err != nil {
			return nil, errors.Wrapf(err, "paths key %q", k)
		}
		var w wireItemSummary
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, errors.Wrapf(err, "path summary %d", id)
		}
		idx.Paths[id] = ItemSummary{
			CrateID: ExternalPackageID(w.CrateID),
			Path:    w.Path,
			Kind:    Kind(w.Kind),
		}
	}

	for k, raw := range wire.ExternalCrates {
		n, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "external_crates key %q", k)
		}
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, errors.Wrapf(err, "external crate %d", n)
		}
		idx.Externals[ExternalPackageID(n)] = ExternalCrate{Name: w.Name}
	}

	return idx, nil
}

func parseLocalID(s string) (LocalID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return LocalID(n), nil
}

type wireItemSummary struct {
	CrateID uint32   `json:"crate_id"`
	Path    []string `json:"path"`
	Kind    string   `json:"kind"`
}

func decodeVisibility(raw stdjson.RawMessage) (Visibility, error) {
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		switch tag {
		case "public":
			return Visibility{Kind: VisibilityPublic}, nil
		case "default":
			return Visibility{Kind: VisibilityDefault}, nil
		case "crate":
			return Visibility{Kind: VisibilityCrate}, nil
		default:
			return Visibility{}, fmt.Errorf("unknown visibility tag %q", tag)
		}
	}

	var obj struct {
		Restricted *struct {
			Parent stdjson.Number `json:"parent"`
			Path   string      `json:"path"`
		} `json:"restricted"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Visibility{}, err
	}
	if obj.Restricted == nil {
		return Visibility{}, fmt.Errorf("unrecognized visibility payload: %s", raw)
	}
	parent, err := parseLocalID(obj.Restricted.Parent.String())
	if err != nil {
		return Visibility{}, err
	}
	return Visibility{Kind: VisibilityRestricted, Parent: &parent, Path: obj.Restricted.Path}, nil
}

func decodeItem(id LocalID, raw stdjson.RawMessage) (Item, error) {
	var w struct {
		Name       *string         `json:"name"`
		Visibility stdjson.RawMessage `json:"visibility"`
		Docs       *string         `json:"docs"`
		Inner      stdjson.RawMessage `json:"inner"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Item{}, err
	}
	vis, err := decodeVisibility(w.Visibility)
	if err != nil {
		return Item{}, errors.Wrap(err, "visibility")
	}
	inner, err := decodeItemEnum(w.Inner)
	if err != nil {
		return Item{}, errors.Wrap(err, "inner")
	}
	return Item{ID: id, Name: w.Name, Visibility: vis, Docs: w.Docs, Inner: inner}, nil
}

// singleKey returns the sole key of a JSON object, used throughout this
// file to dispatch rustdoc's externally-tagged enums ({"variant": payload}).
func singleKey(raw stdjson.RawMessage) (string, stdjson.RawMessage, bool) {
	var m map[string]stdjson.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || len(m) != 1 {
		return "", nil, false
	}
	for k, v := range m {
		return k, v, true
	}
	return "", nil, false
}

func decodeItemEnum(raw stdjson.RawMessage) (ItemEnum, error) {
	key, payload, ok := singleKey(raw)
	if !ok {
		var bare string
		if err := json.Unmarshal(raw, &bare); err == nil {
			return ItemEnum{Kind: Kind(bare)}, nil
		}
		return ItemEnum{}, fmt.Errorf("unrecognized item payload: %s", raw)
	}

	e := ItemEnum{Kind: Kind(key)}
	switch e.Kind {
	case KindModule:
		var w struct {
			IsCrate bool          `json:"is_crate"`
			Items   []stdjson.Number `json:"items"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		ids, err := parseLocalIDs(w.Items)
		if err != nil {
			return e, err
		}
		e.Module = &Module{IsCrate: w.IsCrate, Items: ids}
	case KindExternCrate:
		var w struct {
			Name   string  `json:"name"`
			Rename *string `json:"rename"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		e.ExternCrate = &ExternCrate{Name: w.Name, Rename: w.Rename}
	case KindUse:
		var w struct {
			Source string      `json:"source"`
			Name   string      `json:"name"`
			ID     stdjson.Number `json:"id"`
			Glob   bool        `json:"is_glob"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		use := &Use{Source: w.Source, Name: w.Name, IsGlob: w.Glob}
		if w.ID != "" {
			id, err := parseLocalID(w.ID.String())
			if err != nil {
				return e, err
			}
			use.Target = &id
		}
		e.Use = use
	case KindUnion:
		var w struct {
			Generics stdjson.RawMessage `json:"generics"`
			Fields   []stdjson.Number   `json:"fields"`
			Impls    []stdjson.Number   `json:"impls"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		fields, err := parseLocalIDs(w.Fields)
		if err != nil {
			return e, err
		}
		impls, err := parseLocalIDs(w.Impls)
		if err != nil {
			return e, err
		}
		e.Union = &Union{Generics: gen, Fields: fields, Impls: impls}
	case KindStruct:
		var w struct {
			Kind     stdjson.RawMessage `json:"kind"`
			Generics stdjson.RawMessage `json:"generics"`
			Impls    []stdjson.Number   `json:"impls"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		kind, err := decodeStructKind(w.Kind)
		if err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		impls, err := parseLocalIDs(w.Impls)
		if err != nil {
			return e, err
		}
		e.Struct = &Struct{Kind: kind, Generics: gen, Impls: impls}
	case KindStructField:
		t, err := decodeType(payload)
		if err != nil {
			return e, err
		}
		e.StructField = &t
	case KindEnum:
		var w struct {
			Generics stdjson.RawMessage `json:"generics"`
			Variants []stdjson.Number   `json:"variants"`
			Impls    []stdjson.Number   `json:"impls"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		variants, err := parseLocalIDs(w.Variants)
		if err != nil {
			return e, err
		}
		impls, err := parseLocalIDs(w.Impls)
		if err != nil {
			return e, err
		}
		e.Enum = &Enum{Generics: gen, Variants: variants, Impls: impls}
	case KindVariant:
		var w struct {
			Kind stdjson.RawMessage `json:"kind"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		vk, err := decodeVariantKind(w.Kind)
		if err != nil {
			return e, err
		}
		e.Variant = &Variant{Kind: vk}
	case KindFunction:
		var w struct {
			Sig      stdjson.RawMessage `json:"sig"`
			Generics stdjson.RawMessage `json:"generics"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		sig, err := decodeFunctionSignature(w.Sig)
		if err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		e.Function = &Function{Signature: sig, Generics: gen}
	case KindTrait:
		var w struct {
			Items    []stdjson.Number     `json:"items"`
			Generics stdjson.RawMessage   `json:"generics"`
			Bounds   []stdjson.RawMessage `json:"bounds"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		items, err := parseLocalIDs(w.Items)
		if err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		bounds, err := decodeGenericBounds(w.Bounds)
		if err != nil {
			return e, err
		}
		e.Trait = &Trait{Items: items, Generics: gen, Bounds: bounds}
	case KindTraitAlias:
		e.TraitAlias = &TraitAlias{}
	case KindImpl:
		var w struct {
			Generics stdjson.RawMessage `json:"generics"`
			Trait    stdjson.RawMessage `json:"trait"`
			For      stdjson.RawMessage `json:"for"`
			Items    []stdjson.Number   `json:"items"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		var trait *Path
		if len(w.Trait) > 0 && string(w.Trait) != "null" {
			p, err := decodePath(w.Trait)
			if err != nil {
				return e, err
			}
			trait = &p
		}
		forType, err := decodeType(w.For)
		if err != nil {
			return e, err
		}
		items, err := parseLocalIDs(w.Items)
		if err != nil {
			return e, err
		}
		e.Impl = &Impl{Generics: gen, Trait: trait, For: forType, Items: items}
	case KindTypeAlias:
		var w struct {
			Type     stdjson.RawMessage `json:"type"`
			Generics stdjson.RawMessage `json:"generics"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		e.TypeAlias = &TypeAlias{Type: t, Generics: gen}
	case KindConstant:
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return e, err
		}
		e.Constant = &Constant{Type: t}
	case KindStatic:
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return e, err
		}
		e.Static = &Static{Type: t}
	case KindAssocConst:
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return e, err
		}
		e.AssocConst = &AssocConst{Type: t}
	case KindAssocType:
		var w struct {
			Generics stdjson.RawMessage   `json:"generics"`
			Bounds   []stdjson.RawMessage `json:"bounds"`
			Type     stdjson.RawMessage   `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return e, err
		}
		gen, err := decodeGenerics(w.Generics)
		if err != nil {
			return e, err
		}
		bounds, err := decodeGenericBounds(w.Bounds)
		if err != nil {
			return e, err
		}
		var typ *Type
		if len(w.Type) > 0 && string(w.Type) != "null" {
			t, err := decodeType(w.Type)
			if err != nil {
				return e, err
			}
			typ = &t
		}
		e.AssocType = &AssocType{Generics: gen, Bounds: bounds, Type: typ}
	case KindMacro, KindProcMacro, KindPrimitive, KindExternType:
		// No structured payload the linkers need; Kind alone is enough.
	default:
		return e, fmt.Errorf("unknown item kind %q", key)
	}
	return e, nil
}

func parseLocalIDs(ns []stdjson.Number) ([]LocalID, error) {
	out := make([]LocalID, 0, len(ns))
	for _, n := range ns {
		id, err := parseLocalID(n.String())
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func decodeStructKind(raw stdjson.RawMessage) (StructKind, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare == "unit" {
		return StructKind{Tag: StructKindUnit}, nil
	}
	key, payload, ok := singleKey(raw)
	if !ok {
		return StructKind{}, fmt.Errorf("unrecognized struct kind: %s", raw)
	}
	switch key {
	case "tuple":
		var fields []*stdjson.Number
		if err := json.Unmarshal(payload, &fields); err != nil {
			return StructKind{}, err
		}
		out := make([]*LocalID, len(fields))
		for i, f := range fields {
			if f == nil {
				continue
			}
			id, err := parseLocalID(f.String())
			if err != nil {
				return StructKind{}, err
			}
			out[i] = &id
		}
		return StructKind{Tag: StructKindTuple, TupleFields: out}, nil
	case "plain":
		var w struct {
			Fields []stdjson.Number `json:"fields"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return StructKind{}, err
		}
		ids, err := parseLocalIDs(w.Fields)
		if err != nil {
			return StructKind{}, err
		}
		return StructKind{Tag: StructKindPlain, PlainFields: ids}, nil
	default:
		return StructKind{}, fmt.Errorf("unknown struct kind %q", key)
	}
}

func decodeVariantKind(raw stdjson.RawMessage) (VariantKind, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare == "plain" {
		return VariantKind{Tag: VariantKindPlain}, nil
	}
	key, payload, ok := singleKey(raw)
	if !ok {
		return VariantKind{}, fmt.Errorf("unrecognized variant kind: %s", raw)
	}
	switch key {
	case "tuple":
		var fields []*stdjson.Number
		if err := json.Unmarshal(payload, &fields); err != nil {
			return VariantKind{}, err
		}
		out := make([]*LocalID, len(fields))
		for i, f := range fields {
			if f == nil {
				continue
			}
			id, err := parseLocalID(f.String())
			if err != nil {
				return VariantKind{}, err
			}
			out[i] = &id
		}
		return VariantKind{Tag: VariantKindTuple, TupleFields: out}, nil
	case "struct":
		var w struct {
			Fields []stdjson.Number `json:"fields"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return VariantKind{}, err
		}
		ids, err := parseLocalIDs(w.Fields)
		if err != nil {
			return VariantKind{}, err
		}
		return VariantKind{Tag: VariantKindStruct, StructFields: ids}, nil
	default:
		return VariantKind{}, fmt.Errorf("unknown variant kind %q", key)
	}
}

func decodeFunctionSignature(raw stdjson.RawMessage) (FunctionSignature, error) {
	var w struct {
		Inputs [][2]stdjson.RawMessage `json:"inputs"`
		Output stdjson.RawMessage      `json:"output"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return FunctionSignature{}, err
	}
	sig := FunctionSignature{}
	for _, pair := range w.Inputs {
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return FunctionSignature{}, err
		}
		t, err := decodeType(pair[1])
		if err != nil {
			return FunctionSignature{}, err
		}
		sig.Inputs = append(sig.Inputs, FunctionParam{Name: name, Type: t})
	}
	if len(w.Output) > 0 && string(w.Output) != "null" {
		t, err := decodeType(w.Output)
		if err != nil {
			return FunctionSignature{}, err
		}
		sig.Output = &t
	}
	return sig, nil
}

func decodeGenerics(raw stdjson.RawMessage) (Generics, error) {
	if len(raw) == 0 {
		return Generics{}, nil
	}
	var w struct {
		Params          []stdjson.RawMessage `json:"params"`
		WherePredicates []stdjson.RawMessage `json:"where_predicates"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Generics{}, err
	}
	gen := Generics{}
	for _, p := range w.Params {
		pd, err := decodeGenericParamDef(p)
		if err != nil {
			return Generics{}, err
		}
		gen.Params = append(gen.Params, pd)
	}
	for _, p := range w.WherePredicates {
		wp, err := decodeWherePredicate(p)
		if err != nil {
			return Generics{}, err
		}
		gen.WherePredicates = append(gen.WherePredicates, wp)
	}
	return gen, nil
}

func decodeGenericParamDef(raw stdjson.RawMessage) (GenericParamDef, error) {
	var w struct {
		Name string          `json:"name"`
		Kind stdjson.RawMessage `json:"kind"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return GenericParamDef{}, err
	}
	key, payload, ok := singleKey(w.Kind)
	if !ok {
		return GenericParamDef{}, fmt.Errorf("unrecognized generic param kind: %s", w.Kind)
	}
	pd := GenericParamDef{Name: w.Name}
	switch key {
	case "lifetime":
		pd.Kind = GenericParamLifetime
	case "type":
		var tw struct {
			Bounds  []stdjson.RawMessage `json:"bounds"`
			Default stdjson.RawMessage  `json:"default"`
		}
		if err := json.Unmarshal(payload, &tw); err != nil {
			return GenericParamDef{}, err
		}
		bounds, err := decodeGenericBounds(tw.Bounds)
		if err != nil {
			return GenericParamDef{}, err
		}
		pd.Kind = GenericParamType
		pd.Bounds = bounds
		if len(tw.Default) > 0 && string(tw.Default) != "null" {
			t, err := decodeType(tw.Default)
			if err != nil {
				return GenericParamDef{}, err
			}
			pd.Default = &t
		}
	case "const":
		pd.Kind = GenericParamConst
	default:
		return GenericParamDef{}, fmt.Errorf("unknown generic param kind %q", key)
	}
	return pd, nil
}

func decodeWherePredicate(raw stdjson.RawMessage) (WherePredicate, error) {
	key, payload, ok := singleKey(raw)
	if !ok {
		return WherePredicate{}, fmt.Errorf("unrecognized where predicate: %s", raw)
	}
	switch key {
	case "bound_predicate":
		var w struct {
			Type          stdjson.RawMessage   `json:"type"`
			Bounds        []stdjson.RawMessage `json:"bounds"`
			GenericParams []stdjson.RawMessage `json:"generic_params"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return WherePredicate{}, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return WherePredicate{}, err
		}
		bounds, err := decodeGenericBounds(w.Bounds)
		if err != nil {
			return WherePredicate{}, err
		}
		params, err := decodeGenericParamDefs(w.GenericParams)
		if err != nil {
			return WherePredicate{}, err
		}
		return WherePredicate{Tag: WherePredicateBound, Type: &t, Bounds: bounds, GenericParams: params}, nil
	case "lifetime_predicate":
		return WherePredicate{Tag: WherePredicateLifetime}, nil
	case "eq_predicate":
		var w struct {
			LHS stdjson.RawMessage `json:"lhs"`
			RHS stdjson.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return WherePredicate{}, err
		}
		lhs, err := decodeType(w.LHS)
		if err != nil {
			return WherePredicate{}, err
		}
		rhs, err := decodeTerm(w.RHS)
		if err != nil {
			return WherePredicate{}, err
		}
		return WherePredicate{Tag: WherePredicateEq, LHS: &lhs, RHS: &rhs}, nil
	default:
		return WherePredicate{}, fmt.Errorf("unknown where predicate %q", key)
	}
}

func decodeGenericParamDefs(raws []stdjson.RawMessage) ([]GenericParamDef, error) {
	out := make([]GenericParamDef, 0, len(raws))
	for _, r := range raws {
		pd, err := decodeGenericParamDef(r)
		if err != nil {
			return nil, err
		}
		out = append(out, pd)
	}
	return out, nil
}

func decodeTerm(raw stdjson.RawMessage) (Term, error) {
	key, payload, ok := singleKey(raw)
	if !ok {
		return Term{}, fmt.Errorf("unrecognized term: %s", raw)
	}
	switch key {
	case "type":
		t, err := decodeType(payload)
		if err != nil {
			return Term{}, err
		}
		return Term{Tag: TermType, Type: &t}, nil
	case "constant":
		return Term{Tag: TermConstant}, nil
	default:
		return Term{}, fmt.Errorf("unknown term %q", key)
	}
}

func decodeGenericBounds(raws []stdjson.RawMessage) ([]GenericBound, error) {
	out := make([]GenericBound, 0, len(raws))
	for _, r := range raws {
		b, err := decodeGenericBound(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeGenericBound(raw stdjson.RawMessage) (GenericBound, error) {
	key, payload, ok := singleKey(raw)
	if !ok {
		return GenericBound{}, fmt.Errorf("unrecognized generic bound: %s", raw)
	}
	switch key {
	case "trait_bound":
		var w struct {
			Trait         stdjson.RawMessage   `json:"trait"`
			GenericParams []stdjson.RawMessage `json:"generic_params"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return GenericBound{}, err
		}
		trait, err := decodePath(w.Trait)
		if err != nil {
			return GenericBound{}, err
		}
		params, err := decodeGenericParamDefs(w.GenericParams)
		if err != nil {
			return GenericBound{}, err
		}
		return GenericBound{Tag: GenericBoundTrait, Trait: trait, GenericParams: params}, nil
	case "outlives":
		return GenericBound{Tag: GenericBoundOutlives}, nil
	case "use":
		return GenericBound{Tag: GenericBoundUse}, nil
	default:
		return GenericBound{}, fmt.Errorf("unknown generic bound %q", key)
	}
}

func decodePath(raw stdjson.RawMessage) (Path, error) {
	var w struct {
		Name string          `json:"path"`
		ID   stdjson.Number     `json:"id"`
		Args stdjson.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Path{}, err
	}
	id, err := parseLocalID(w.ID.String())
	if err != nil {
		return Path{}, err
	}
	p := Path{Name: w.Name, ID: id}
	if len(w.Args) > 0 && string(w.Args) != "null" {
		args, err := decodeGenericArgs(w.Args)
		if err != nil {
			return Path{}, err
		}
		p.Args = &args
	}
	return p, nil
}

func decodeGenericArgs(raw stdjson.RawMessage) (GenericArgs, error) {
	key, payload, ok := singleKey(raw)
	if !ok {
		return GenericArgs{}, fmt.Errorf("unrecognized generic args: %s", raw)
	}
	switch key {
	case "angle_bracketed":
		var w struct {
			Args        []stdjson.RawMessage `json:"args"`
			Constraints []stdjson.RawMessage `json:"constraints"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return GenericArgs{}, err
		}
		args := make([]GenericArg, 0, len(w.Args))
		for _, a := range w.Args {
			ga, err := decodeGenericArg(a)
			if err != nil {
				return GenericArgs{}, err
			}
			args = append(args, ga)
		}
		constraints := make([]AssocItemConstraint, 0, len(w.Constraints))
		for _, c := range w.Constraints {
			ac, err := decodeAssocItemConstraint(c)
			if err != nil {
				return GenericArgs{}, err
			}
			constraints = append(constraints, ac)
		}
		return GenericArgs{Tag: GenericArgsAngleBracketed, Args: args, Constraints: constraints}, nil
	case "parenthesized":
		var w struct {
			Inputs []stdjson.RawMessage `json:"inputs"`
			Output stdjson.RawMessage  `json:"output"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return GenericArgs{}, err
		}
		inputs := make([]Type, 0, len(w.Inputs))
		for _, i := range w.Inputs {
			t, err := decodeType(i)
			if err != nil {
				return GenericArgs{}, err
			}
			inputs = append(inputs, t)
		}
		ga := GenericArgs{Tag: GenericArgsParenthesized, Inputs: inputs}
		if len(w.Output) > 0 && string(w.Output) != "null" {
			t, err := decodeType(w.Output)
			if err != nil {
				return GenericArgs{}, err
			}
			ga.Output = &t
		}
		return ga, nil
	default:
		return GenericArgs{}, fmt.Errorf("unknown generic args %q", key)
	}
}

func decodeGenericArg(raw stdjson.RawMessage) (GenericArg, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare == "infer" {
		return GenericArg{Tag: GenericArgInfer}, nil
	}
	key, payload, ok := singleKey(raw)
	if !ok {
		return GenericArg{}, fmt.Errorf("unrecognized generic arg: %s", raw)
	}
	switch key {
	case "lifetime":
		return GenericArg{Tag: GenericArgLifetime}, nil
	case "type":
		t, err := decodeType(payload)
		if err != nil {
			return GenericArg{}, err
		}
		return GenericArg{Tag: GenericArgType, Type: &t}, nil
	case "const":
		return GenericArg{Tag: GenericArgConst}, nil
	default:
		return GenericArg{}, fmt.Errorf("unknown generic arg %q", key)
	}
}

func decodeAssocItemConstraint(raw stdjson.RawMessage) (AssocItemConstraint, error) {
	var w struct {
		Name    string          `json:"name"`
		Args    stdjson.RawMessage `json:"args"`
		Binding stdjson.RawMessage `json:"binding"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return AssocItemConstraint{}, err
	}
	args, err := decodeGenericArgs(w.Args)
	if err != nil {
		return AssocItemConstraint{}, err
	}
	ac := AssocItemConstraint{Name: w.Name, Args: args}
	key, payload, ok := singleKey(w.Binding)
	if !ok {
		return AssocItemConstraint{}, fmt.Errorf("unrecognized assoc item constraint binding: %s", w.Binding)
	}
	switch key {
	case "equality":
		term, err := decodeTerm(payload)
		if err != nil {
			return AssocItemConstraint{}, err
		}
		ac.Kind = AssocItemConstraintEquality
		ac.Term = &term
	case "constraint":
		var bounds []stdjson.RawMessage
		if err := json.Unmarshal(payload, &bounds); err != nil {
			return AssocItemConstraint{}, err
		}
		gb, err := decodeGenericBounds(bounds)
		if err != nil {
			return AssocItemConstraint{}, err
		}
		ac.Kind = AssocItemConstraintBound
		ac.Bounds = gb
	default:
		return AssocItemConstraint{}, fmt.Errorf("unknown assoc item constraint kind %q", key)
	}
	return ac, nil
}

func decodeType(raw stdjson.RawMessage) (Type, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == "infer" {
			return Type{Tag: TypeInfer}, nil
		}
		return Type{Tag: TypeGeneric}, nil
	}

	key, payload, ok := singleKey(raw)
	if !ok {
		return Type{}, fmt.Errorf("unrecognized type: %s", raw)
	}
	switch key {
	case "resolved_path":
		p, err := decodePath(payload)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeResolvedPath, ResolvedPath: &p}, nil
	case "dyn_trait":
		var w struct {
			Traits []stdjson.RawMessage `json:"traits"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		traits := make([]PolyTrait, 0, len(w.Traits))
		for _, t := range w.Traits {
			var tw struct {
				Trait         stdjson.RawMessage   `json:"trait"`
				GenericParams []stdjson.RawMessage `json:"generic_params"`
			}
			if err := json.Unmarshal(t, &tw); err != nil {
				return Type{}, err
			}
			trait, err := decodePath(tw.Trait)
			if err != nil {
				return Type{}, err
			}
			params, err := decodeGenericParamDefs(tw.GenericParams)
			if err != nil {
				return Type{}, err
			}
			traits = append(traits, PolyTrait{Trait: trait, GenericParams: params})
		}
		return Type{Tag: TypeDynTrait, DynTrait: &DynTrait{Traits: traits}}, nil
	case "generic":
		return Type{Tag: TypeGeneric}, nil
	case "primitive":
		return Type{Tag: TypePrimitive}, nil
	case "function_pointer":
		var w struct {
			Sig           stdjson.RawMessage   `json:"sig"`
			GenericParams []stdjson.RawMessage `json:"generic_params"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		sig, err := decodeFunctionSignature(w.Sig)
		if err != nil {
			return Type{}, err
		}
		params, err := decodeGenericParamDefs(w.GenericParams)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeFunctionPointer, FunctionPointer: &FunctionPointer{Signature: sig, GenericParams: params}}, nil
	case "tuple":
		var items []stdjson.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return Type{}, err
		}
		tuple := make([]Type, 0, len(items))
		for _, i := range items {
			t, err := decodeType(i)
			if err != nil {
				return Type{}, err
			}
			tuple = append(tuple, t)
		}
		return Type{Tag: TypeTuple, Tuple: tuple}, nil
	case "slice":
		t, err := decodeType(payload)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeSlice, Slice: &t}, nil
	case "array":
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeArray, Array: &t}, nil
	case "pat":
		return Type{Tag: TypePat}, nil
	case "impl_trait":
		var bounds []stdjson.RawMessage
		if err := json.Unmarshal(payload, &bounds); err != nil {
			return Type{}, err
		}
		gb, err := decodeGenericBounds(bounds)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeImplTrait, ImplTrait: gb}, nil
	case "raw_pointer":
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeRawPointer, RawPointer: &t}, nil
	case "borrowed_ref":
		var w struct {
			Type stdjson.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		t, err := decodeType(w.Type)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: TypeBorrowedRef, BorrowedRef: &t}, nil
	case "qualified_path":
		var w struct {
			Args     stdjson.RawMessage `json:"args"`
			SelfType stdjson.RawMessage `json:"self_type"`
			Trait    stdjson.RawMessage `json:"trait"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return Type{}, err
		}
		args, err := decodeGenericArgs(w.Args)
		if err != nil {
			return Type{}, err
		}
		self, err := decodeType(w.SelfType)
		if err != nil {
			return Type{}, err
		}
		qp := &QualifiedPath{Args: args, SelfType: self}
		if len(w.Trait) > 0 && string(w.Trait) != "null" {
			trait, err := decodePath(w.Trait)
			if err != nil {
				return Type{}, err
			}
			qp.Trait = &trait
		}
		return Type{Tag: TypeQualifiedPath, QualifiedPath: qp}, nil
	default:
		return Type{}, fmt.Errorf("unknown type kind %q", key)
	}
}
