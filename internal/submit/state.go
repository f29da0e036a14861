// Package submit owns the submission lifecycle: the per-form state
// machine gating concurrent attempts, and the submitter that drives one
// input through validate -> inference -> interpret.
package submit

import (
	"errors"
	"sync"

	"medipredict/internal/domain"
)

// State of one form's submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrSubmissionInFlight is returned when a submit trigger arrives while a
// request is pending. The in-flight call is never cancelled; it runs to
// completion before the machine can advance.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// FailureKind tags the terminal Failed payload.
type FailureKind string

const (
	FailValidation         FailureKind = "validation"
	FailAuth               FailureKind = "auth"
	FailTransport          FailureKind = "transport"
	FailUnrecognizedResult FailureKind = "unrecognized_result"
)

// Failure is the payload carried by the Failed state.
type Failure struct {
	Kind    FailureKind
	Message string
	Fields  []string // offending field names, validation only
}

// Machine is the finite state machine for one form instance:
//
//	Idle -> Validating -> Submitting -> {Succeeded, Failed}
//
// Succeeded/Failed are re-entrant: a new user action starts a fresh
// Validating cycle and overwrites the prior terminal payload. Form
// instances are independent; nothing is shared between machines.
type Machine struct {
	mu      sync.Mutex
	state   State
	result  *domain.DisplayResult
	failure *Failure
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Result returns the DisplayResult carried by Succeeded, or nil.
func (m *Machine) Result() *domain.DisplayResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Failure returns the payload carried by Failed, or nil.
func (m *Machine) Failure() *Failure {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failure
}

// begin starts a new cycle. Only one submission may be in flight per
// form: triggers during Validating/Submitting are rejected.
func (m *Machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateValidating, StateSubmitting:
		return ErrSubmissionInFlight
	}
	m.state = StateValidating
	m.result = nil
	m.failure = nil
	return nil
}

// submitting advances Validating -> Submitting once local checks passed.
func (m *Machine) submitting() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateSubmitting
}

// succeed parks the display result as the terminal payload.
func (m *Machine) succeed(res domain.DisplayResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateSucceeded
	m.result = &res
}

// fail parks the failure as the terminal payload. Reached directly from
// Validating on a local validation error, or from Submitting otherwise.
func (m *Machine) fail(f Failure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateFailed
	m.failure = &f
}
