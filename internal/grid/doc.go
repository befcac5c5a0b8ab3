// Package grid implements the in-memory tabular data pipeline behind every
// table page: free-text search, single-column sorting with a tri-state toggle,
// page slicing and row selection.
//
// The package has no I/O and no UI dependencies. Rows are any type that
// implements [Record]; [Map] covers the common case of rows decoded from
// JSON or scanned from the database.
//
// # Pipeline
//
// Every render is a full, synchronous recomputation:
//
//	rows -> Filter -> Sort -> Paginate -> materialized page
//
// [Recompute] is a pure function of its [Input], so it is safe to call as
// often as needed. [Grid.View] wraps it and annotates each page row with its
// identity, selection flag and rendered cells.
//
// # Controlled and uncontrolled state
//
// Search term, sort config and current page are each held in a [State].
// A State whose [Binding] carries an OnChange callback delegates writes to the
// caller, who feeds the accepted value back with Supply. Without a callback
// the State owns its value. Both modes can be mixed freely per field:
//
//	g := grid.New(grid.Options[grid.Map]{
//	    Columns: cols,
//	    Search:  grid.Binding[string]{OnChange: func(s string) { url.Set("q", s) }},
//	})
//	g.SetSearch("ann")  // calls the callback, internal state untouched
//	g.SupplySearch("ann") // caller feeds the accepted value back
//
// # Selection
//
// Selection is tracked by row identity (see [Identity]) and survives search,
// sort and page changes. Identities are not checked for uniqueness; duplicate
// identities on a page are logged and otherwise collapse into one selection
// entry.
package grid
