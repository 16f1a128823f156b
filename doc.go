// Package transpiler holds the semantic type system and configuration shared
// by the code generators of the BSON query transpiler. The translation rule
// set itself lives in langs/pygen; the expression grammar front-end in
// tokenizer and parser; constant folding in sandbox.
package transpiler
