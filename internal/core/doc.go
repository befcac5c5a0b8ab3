// Package core provides the business logic behind the coaching back office
// tables.
//
// It holds no HTTP or terminal code, so the web server and the coachctl CLI
// share it unchanged.
//
// # Table Registry
//
// Tables register at init time using [Register]. A [TableDefinition] names
// the table's columns, their types and validation rules, the identity
// column and the schema:
//
//	core.Register(core.TableDefinition{
//	    Info:     core.TableInfo{Key: "clients", Group: "Coaching", Label: "Clients"},
//	    IDColumn: "id",
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "ID", Column: "id", Hidden: true},
//	        {Name: "Full name", Column: "full_name", Required: true},
//	    },
//	})
//
// # Grids
//
// Every read goes through the in-memory pipeline in package grid: the
// service loads a whole table and the grid filters, sorts and pages it.
// Two modes are offered:
//
//   - Controlled: [Service.QueryTable] takes the client's [TableState],
//     applies one [Action] and returns the state the client should send
//     next. Nothing is kept on the server.
//   - Uncontrolled: [Service.OpenGrid] creates a [GridSession] that keeps
//     its own state; [Service.ApplyGrid] changes it. Idle sessions are
//     evicted by [Service.RunSessionSweeper].
//
// Full-table loads are bounded by a [LoadLimiter].
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes by
// [MapError]. Lookups fail with the sentinel errors [ErrTableNotFound],
// [ErrSessionNotFound] and [ErrRowNotFound]; bad input fails with
// [ValidationErrors].
package core
