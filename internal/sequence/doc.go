// Package sequence provides the input data for a sort run.
//
// A [Sequence] is an ordered list of [Element] values in the display range
// [MinValue, MaxValue]. A [Generator] produces fresh random sequences from a
// seeded source, so a run can be reproduced from its seed.
package sequence
