package errors

import "fmt"

// ScrapeError reports a failed engine round-trip during one collection cycle.
// Stage names the query that failed, "inventory" or "stats".
type ScrapeError struct {
	Stage string
	Err   error
}

func (e ScrapeError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Stage, e.Err)
}

func (e ScrapeError) Unwrap() error {
	return e.Err
}

func ScrapeErr(stage string, err error) ScrapeError {
	return ScrapeError{
		Stage: stage,
		Err:   err,
	}
}
