// Package runner executes a single external process to completion or
// timeout, draining stdout and stderr concurrently so the child can never
// deadlock against a full pipe buffer, and folding every outcome into a
// single Result value.
//
// Full process-group termination is only guaranteed on Linux, where the
// runner can rely on the operating system's job-control semantics to deliver
// the kill signal to every member of the child process group. On macOS and
// Windows the timeout path offers best-effort semantics: the signal reaches
// the direct child, but without kernel-enforced job control any
// grandchildren may remain running and must be cleaned up separately by the
// caller.
package runner
