// Package table loads whitespace-separated text files into an in-memory table
// with caller-supplied column names. The first field of every row is kept as
// text; the remaining fields are parsed as float64. Any row whose field count
// differs from the number of column names, or any token that is not a number,
// fails the whole load with a *ParseError naming the offending line.
package table
