// Package similarity scores how alike two pieces of row text are.
//
// The score is a token-overlap heuristic on a 0-100 scale. Both inputs are split on
// whitespace, the shared tokens are separated from the tokens only one side has, and the
// resulting sorted strings are compared by the length of their common leading run.
//
// # Scoring
//
//   - TokenRatio: full row comparison used by the merge engine.
//   - PrefixRatio: the building block, 200*match/(len(x)+len(y)) over the common prefix.
//
// Word reordering between shared tokens does not lower the score, and text appended at the
// end of a row costs less than text that diverges early.
//
// # Usage
//
//	score := similarity.TokenRatio("Jane Smith Accounting", "Jane Smith Accounting Dept")
//	if score >= 80 {
//	    // same logical record
//	}
package similarity
