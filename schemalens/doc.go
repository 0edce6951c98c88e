// Package schemalens infers a structural schema from self-describing data,
// one value at a time, without ever holding more than one document's worth
// of state beyond the schema itself.
//
// A format adapter (see the source subpackages) turns a document into a
// stream of [Token]s; [InferFromTokens] consumes that stream and returns a
// [Schema]. Further documents expand an existing schema via [Extend], and
// independently inferred schemas combine via [Coalesce] — associatively,
// and commutatively up to the order of struct fields and union variants,
// so which schemas were merged first changes at most that ordering.
//
// Every [Schema] leaf carries an aggregator tracking per-type statistics
// (occurrence counts, samples, min/max, suspicious-string and
// semantic-label tallies); [Context] selects which concrete aggregator
// types a given inference run uses, defaulting to the full statistics set
// ([DefaultContext]) or a zero-overhead no-op set ([UnitContext]).
//
// The package never validates a document against a schema, never retains
// values beyond what its aggregators summarize, and never tracks how a
// schema evolved over time — it only ever describes the shape currently
// observed.
package schemalens
