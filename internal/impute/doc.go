// Package impute implements five independent gap-filling strategies for
// well-log frames, so their results can be compared on the same
// outlier-cleaned input:
//
//  1. Eliminate: drop every row containing a missing sample.
//  2. Mean: replace gaps with the column mean.
//  3. Interpolate: linear interpolation along depth, interior gaps only,
//     bounded by a maximum run length.
//  4. KNN: whole-row nearest-neighbor imputation with a partial distance
//     over jointly observed channels.
//  5. Progressive: per-column nearest-neighbor regression, filling one
//     column per round and using completed columns as predictors for the
//     next.
//
// Every strategy takes the shared filtered frame, clones it, and returns
// its own derived frame; strategies have no data dependency on each other
// and can run concurrently. Failures carry the typed errors from
// internal/errors and never corrupt sibling outputs.
package impute
