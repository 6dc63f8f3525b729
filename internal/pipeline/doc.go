// Package pipeline provides a framework for executing assessment steps
// in sequence.
//
// The pipeline pattern carries one article through multiple stages:
// fetching from the API, building the document model, running the
// analyzers, aggregating the score, persisting history, and writing the
// report. Each stage is implemented as a Step that receives the current
// assessment state and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running assessments
//
// The pipeline supports both individual assessments and batch processing
// with concurrency control using errgroup.
package pipeline
