// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// elab provides elaboration for the core of an ML-family language: type inference with
// let-polymorphism and the value restriction, record types with flexible patterns, and
// compilation of pattern matches into decision procedures.
//
// The type-system is Hindley-Milner with record rows. Generalization uses binding-levels,
// following Oleg Kiselyov's notes on efficient generalization.
//
// Pattern matches are compiled with the pattern-matrix algorithm described by Luc Maranget;
// non-exhaustive matches and redundant clauses are reported as diagnostics.
//
//
// Supported Features:
//
//   * Let-polymorphism with the value restriction (weak type-variables print as '_a)
//   * Mutually-recursive functions, split into strongly-connected components before generalization
//   * Mutually-recursive (generic) datatypes and transparently aliased (generic) types
//   * Rigid record types and flexible record patterns: {x, y, ...}
//   * Exceptions as constructors of the open type exn
//   * Guarded rules, layered patterns and list patterns
//   * Elaboration continues after errors; failed declarations bind their names to 'a
//
//
// Links:
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Compiling Pattern Matching to Good Decision Trees (Luc Maranget, 2008): http://moscova.inria.fr/~maranget/papers/ml05e-maranget.pdf
//
// Warnings for pattern matching (Luc Maranget, 2007): http://moscova.inria.fr/~maranget/papers/warn/index.html
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Value restriction: https://en.wikipedia.org/wiki/Value_restriction
package elab
