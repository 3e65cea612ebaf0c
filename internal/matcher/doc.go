// Package matcher pairs video files with audio or subtitle companions by
// filename similarity.
//
// Scores combine a longest-common-subsequence ratio over normalised base
// names with a structural boost when both names carry the same season and
// episode numbers. Assignment is greedy and exclusive: videos are visited in
// input order, each takes the best remaining companion, ties go to the
// companion listed first. The package performs no I/O.
package matcher
