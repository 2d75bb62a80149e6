// Package oops implements a small message-passing language built around
// classes, keyword arguments, and bracketed sends:
//   - Class definitions via `[Class subclass name: #Dog super: #Object fields: [#name]];`.
//   - Method definitions via `[Dog def: #speak do: |volume:| { ... }];`.
//   - Instantiation via `[Dog new name: 1]`, binding every declared field by keyword.
//   - Message sends via `[receiver selector label: expr ...]`, resolved up the
//     superclass chain.
//   - Literals for 32-bit integers, booleans, and lists; `let` bindings for
//     locals and `let @x` for instance variables; `return` with
//     statement-level short circuit.
//
// The pipeline is Lex -> Parse -> class-table build -> evaluation; Compile
// runs the first three and Script.Run the last. Session keeps classes and
// top-level locals alive across inputs for interactive use. Every stage
// fails fast: the first error aborts the run and is the sole diagnostic.
package oops
