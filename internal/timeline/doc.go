// Package timeline records a bubble sort run as an ordered list of steps.
//
// The recorder works on a private copy of its input and never touches a view:
//
//   - [Highlight]: which indices are active in a step, plus the sorted boundary
//   - [Step]: immutable snapshot, highlight and narrative
//   - [Timeline]: the append-only list of steps for one run
//   - [Recorder]: runs the sort and notifies observers as steps are appended
//   - [LogObserver]: an observer that logs each step at debug level
//
// # Example
//
//	tl := timeline.Record(sequence.Sequence{5, 3, 8})
//	last := tl.Last() // snapshot [3 5 8], sortedFrom(0)
//
// # Thread Safety
//
// A Timeline is never modified after Record returns, so it may be read from
// any number of goroutines. A Recorder is NOT thread-safe.
package timeline
