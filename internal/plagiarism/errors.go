package plagiarism

import "errors"

// ErrInputTooLarge rejects submissions whose declared word count exceeds the
// hard ceiling. Surfaced to the caller as a distinct user-facing condition.
var ErrInputTooLarge = errors.New("document exceeds maximum word count")

// ErrHashFailure marks a failed content digest. Fatal for the whole request;
// indicates an environment-level problem rather than bad input.
var ErrHashFailure = errors.New("content hash computation failed")
