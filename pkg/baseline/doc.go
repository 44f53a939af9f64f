// Package baseline records the last known version of each tracked package
// and classifies new results against it.
//
// A [Baseline] is loaded once before resolution, read concurrently while
// packages resolve, and replaced (never mutated) after the run with
// [Apply]. [Diff] classifies a single outcome as new, changed, unchanged or
// failed.
//
// Stores:
//
//   - [FileStore]: name=version lines, rewritten atomically (read/write)
//   - [ExportsStore]: a shell script of export NAME_version="v" lines (read-only)
//   - [EnvStore]: NAME_version variables of the process environment (read-only)
//   - [MongoStore]: one document per package in a MongoDB collection (read/write)
//
// Read-only stores back the comparison mode, where an externally maintained
// reference is only reported against; Save on them fails with READ_ONLY.
package baseline
