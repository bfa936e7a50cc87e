// Package toon encodes and decodes TOON (Token-Oriented Object Notation),
// a textual, JSON-compatible serialization format designed to minimize
// token count when embedding structured data in LLM prompts.
//
// Encode and Marshal convert a Go value into its canonical TOON text;
// Decode and Unmarshal parse TOON text back into a Value tree or a typed
// Go value. DecodeStreamSync and DecodeStream expose the decoder's
// structural event sequence (startObject, endObject, startArray, key,
// primitive, ...) for callers that want to drive their own builder
// instead of materializing a full tree.
//
// Struct fields are included under their lowercased Go name by default.
// A "toon" tag overrides the name and can mark a field with ",omitempty"
// or exclude it entirely with "-":
//
//	type Row struct {
//	    ID   int    `toon:"id"`
//	    Name string `toon:"name,omitempty"`
//	}
package toon
