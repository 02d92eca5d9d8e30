// Package tasks orchestrates long-running catalog operations with real-time
// progress reporting.
//
// The [ExportEngine] walks every page of the sheet catalog under a rate
// limiter and hands the materialized catalog to the formatter package. All
// operations emit [ProgressUpdate] values through non-blocking channels so
// the CLI layer can display status without slowing the work down.
package tasks
