package graph

// defaultAliases seeds the package name rewrite table. The original
// implementation hard-coded a single rewrite (`webpki` crates were split
// and re-published as `rustls-webpki`, but a lot of dependency graphs still
// reference the old name in `extern crate` declarations). The principled
// fix is to consult the resolved dependency graph (Cargo.lock) to find
// which name the compiler actually bound, but this analysis never loads
// Cargo.lock, so the table remains a manual, user-extensible escape hatch.
func defaultAliases() map[string]string {
	return map[string]string{
		"webpki": "rustls_webpki",
	}
}

// rewriteAlias applies the alias table. The lookup is by exact name: hyphens
// and underscores are not normalized, so table keys are written in rustdoc
// JSON's underscore form.
func (r *Registry) rewriteAlias(name string) string {
	if to, ok := r.aliases[name]; ok {
		return to
	}
	return name
}

// SetAlias registers an additional package name rewrite, for callers that
// need to extend the table beyond the built-in webpki entry.
func (r *Registry) SetAlias(from, to string) {
	r.aliases[from] = to
}
