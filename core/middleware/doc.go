// Package middleware holds the Fiber middleware wrapped around the merge API.
//
// # Components
//
//   - rayid: tags every request with an X-Ray-ID header and stores the same value
//     under the "ray_id" locals key. A valid UUID sent by the client is kept.
//   - auth: compares the X-API-Key header with SERVER_API_KEY in constant time and
//     answers 401 on mismatch. An empty SERVER_API_KEY turns the check off.
//
// serve registers rayid first so request logs carry the ID, then the public
// /swagger and /health routes, then auth in front of the merge feature.
package middleware
