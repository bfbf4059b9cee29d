// Package domsift reduces large, noisy HTML documents to a compact structural
// summary that keeps only the elements and attributes useful for building
// browser-automation selectors (id, class, key attributes, positional paths).
//
// This package contains domain types, pure classification rules, and
// interfaces following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package domsift
