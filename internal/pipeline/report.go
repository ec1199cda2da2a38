// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"errors"
	"fmt"

	"slidepress/internal/jsonx"
)

// PassError records a pass that failed and was rolled back.
type PassError struct {
	Pass     string
	Err      error
	Panicked bool
}

func (e *PassError) Error() string {
	if e.Panicked {
		return fmt.Sprintf("pass %s panicked: %v", e.Pass, e.Err)
	}
	return fmt.Sprintf("pass %s: %v", e.Pass, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// MarshalJSON includes the error text.
func (e *PassError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return jsonx.Marshal(struct {
		Pass     string `json:"pass"`
		Error    string `json:"error"`
		Panicked bool   `json:"panicked,omitempty"`
	}{e.Pass, msg, e.Panicked})
}

// UnmarshalJSON restores a PassError written by MarshalJSON. The original
// error value is not recoverable; its text is kept.
func (e *PassError) UnmarshalJSON(b []byte) error {
	var raw struct {
		Pass     string `json:"pass"`
		Error    string `json:"error"`
		Panicked bool   `json:"panicked"`
	}
	if err := jsonx.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Pass, e.Panicked = raw.Pass, raw.Panicked
	e.Err = errors.New(raw.Error)
	return nil
}

// Report summarises one pipeline run.
type Report struct {
	Applied []string     `json:"applied"`
	Skipped []string     `json:"skipped,omitempty"`
	Failed  []*PassError `json:"failed,omitempty"`
}

// OK reports whether every pass either applied or was skipped.
func (r *Report) OK() bool { return len(r.Failed) == 0 }

// FailedPasses lists the names of the passes that were rolled back.
func (r *Report) FailedPasses() []string {
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Pass
	}
	return names
}
