// Package ledger records clearing runs in a SQLite database so that past
// allocations can be listed and inspected later.
//
// One row in runs per clearing invocation (successful or failed), one row in trades
// per emitted trade, keyed by (run_id, seq) so trade order survives the round trip.
// The database uses WAL mode and a single connection; the CLI is the only writer.
package ledger
