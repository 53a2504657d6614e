// Package merge exposes row merging as a service, an HTTP API and a merge history.
//
// A merge loads an old and a new dataset (inline, from object storage or from SQL tables),
// groups near-duplicate rows with the reconcile engine and returns one row per group under
// the old dataset's header. Results can be saved to an object or table.
//
// # Endpoints
//
//	POST /merge            inline datasets; ?format=csv returns CSV
//	POST /merge/refs       s3:// or table:// references, optional output
//	POST /merge/plan       match groups with member scores
//	GET  /merge/score      similarity of ?a= and ?b=
//	GET  /merge/runs       recent runs (needs a database)
//	GET  /merge/runs/:id   one run
//	GET  /merge/datasets   CSV/TSV keys in the bucket
//
// Built plans are cached by content for merge.cache_ttl_seconds, so repeating a merge of the
// same rows at the same threshold skips the quadratic grouping.
package merge
