package submit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medipredict/internal/domain"
	"medipredict/internal/inference"
	"medipredict/internal/interpret"
	"medipredict/internal/schema"
)

// InferenceClient is the outbound boundary the submitter talks to.
// *inference.Client satisfies it.
type InferenceClient interface {
	Submit(ctx context.Context, in *schema.Input, credential string) (domain.PredictionResult, error)
}

// CredentialProvider supplies the bearer credential at submission time.
// The submitter never reaches into ambient token state; whoever owns the
// auth lifecycle injects this.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// StaticCredential adapts a plain token string into a CredentialProvider.
type StaticCredential string

func (s StaticCredential) Credential(ctx context.Context) (string, error) {
	return string(s), nil
}

// Submitter drives one form's submissions through the machine. Errors
// never escape past the terminal Failed state; callers either use the
// returned values or inspect Machine().
type Submitter struct {
	machine *Machine
	client  InferenceClient
	creds   CredentialProvider
	logger  *zap.Logger
}

func NewSubmitter(client InferenceClient, creds CredentialProvider, logger *zap.Logger) *Submitter {
	return &Submitter{
		machine: NewMachine(),
		client:  client,
		creds:   creds,
		logger:  logger,
	}
}

// Machine exposes the state machine for callers that render state.
func (s *Submitter) Machine() *Machine { return s.machine }

// Submit runs one full cycle for the given input: gate on the machine,
// validate locally, send, interpret. On success the DisplayResult is both
// returned and parked on the machine; on failure the classified Failure
// is parked and the original error returned.
func (s *Submitter) Submit(ctx context.Context, in *schema.Input) (domain.DisplayResult, error) {
	var zero domain.DisplayResult

	if err := s.machine.begin(); err != nil {
		return zero, err
	}

	if err := schema.Validate(in); err != nil {
		s.machine.fail(classify(err))
		s.logger.Info("submission blocked by validation",
			zap.String("disease", string(in.Schema.Disease)),
			zap.Error(err),
		)
		return zero, err
	}

	credential, err := s.creds.Credential(ctx)
	if err != nil {
		err = &inference.Error{Kind: inference.KindAuth, Detail: "credential unavailable"}
		s.machine.fail(classify(err))
		return zero, err
	}

	// Freeze the input so the form can keep mutating its copy while the
	// request is out.
	frozen := *in
	frozen.Metadata = in.Metadata.Clone()
	if in.Values != nil {
		frozen.Values = make(map[string]string, len(in.Values))
		for k, v := range in.Values {
			frozen.Values[k] = v
		}
	}

	s.machine.submitting()

	result, err := s.client.Submit(ctx, &frozen, credential)
	if err != nil {
		s.machine.fail(classify(err))
		return zero, err
	}

	display, err := interpret.Interpret(result, in.Schema.Disease)
	if err != nil {
		s.machine.fail(classify(err))
		s.logger.Warn("prediction label not interpretable",
			zap.String("disease", string(in.Schema.Disease)),
			zap.String("label", result.Label),
		)
		return zero, err
	}

	s.machine.succeed(display)
	return display, nil
}

// classify folds the error zoo into the terminal Failure payload.
func classify(err error) Failure {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return Failure{Kind: FailValidation, Message: verr.Error(), Fields: verr.Fields()}
	}
	var uerr *interpret.ErrUnrecognizedLabel
	if errors.As(err, &uerr) {
		return Failure{Kind: FailUnrecognizedResult, Message: uerr.Error()}
	}
	var ierr *inference.Error
	if errors.As(err, &ierr) {
		kind := FailTransport
		switch ierr.Kind {
		case inference.KindAuth:
			kind = FailAuth
		case inference.KindValidation:
			kind = FailValidation
		}
		return Failure{Kind: kind, Message: ierr.Detail}
	}
	return Failure{Kind: FailTransport, Message: err.Error()}
}
