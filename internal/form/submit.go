package form

import (
	"context"
	"encoding/json"
	"net/http"

	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
)

// Policy decides whether the completion callback runs after a failed endpoint call.
type Policy uint8

const (
	// ContinueOnEndpointError runs the callback even when the endpoint call failed.
	ContinueOnEndpointError Policy = iota
	StopOnEndpointError
)

// Submission describes where validated values go.
type Submission struct {
	// Endpoint, when set, receives the values as a JSON body.
	Endpoint string
	// Method defaults to POST.
	Method string
	// IncludeAuth attaches the bearer token of Credentials.
	IncludeAuth bool
	Credentials httpreq.Credentials
	// Body shapes the JSON body; nil sends the values as they are.
	Body func(Values) any
	// OnSubmit is the completion callback.
	OnSubmit func(ctx context.Context, values Values) error
}

// Outcome reports what a submission did.
type Outcome struct {
	// EndpointErr is the logged, non-propagated error of the endpoint call.
	EndpointErr error
	// Response is the decoded endpoint response.
	Response  json.RawMessage
	Completed bool
}

// Message is the user-facing endpoint error, or "".
func (o Outcome) Message() string { return httpreq.Message(o.EndpointErr) }

// Submitter sends validated forms to the backend.
type Submitter struct {
	l      log.Logger
	client *httpreq.Client
	policy Policy
}

// NewSubmitter creates a Submitter.
func NewSubmitter(l log.Logger, client *httpreq.Client, policy Policy) *Submitter {
	return &Submitter{l: l, client: client, policy: policy}
}

// Submit sends values per sub. An endpoint error is logged and reported in the
// Outcome, never returned. The returned error is the callback's own.
func (s *Submitter) Submit(ctx context.Context, sub Submission, values Values) (Outcome, error) {
	var out Outcome

	if sub.Endpoint != "" {
		method := sub.Method
		if method == "" {
			method = http.MethodPost
		}
		var body any = values
		if sub.Body != nil {
			body = sub.Body(values)
		}
		req := httpreq.Request{URL: sub.Endpoint, Method: method, Body: body}
		if sub.IncludeAuth {
			req.Credentials = sub.Credentials
		}

		hook := httpreq.NewHook[json.RawMessage](s.client)
		if err := hook.Send(ctx, req); err != nil {
			s.l.Errorf(ctx, "form.Submit %s %s: %v", method, sub.Endpoint, err)
			out.EndpointErr = err
		} else if st := hook.State(); st.Data != nil {
			out.Response = *st.Data
		}
	}

	if out.EndpointErr != nil && s.policy == StopOnEndpointError {
		return out, nil
	}
	if sub.OnSubmit == nil {
		out.Completed = true
		return out, nil
	}
	err := sub.OnSubmit(ctx, values)
	out.Completed = true
	return out, err
}

// Run drives one submit attempt through f: validation, the endpoint call and the
// completion callback. Invalid values never reach Submit.
func (s *Submitter) Run(ctx context.Context, f *Form, st State, sub Submission) (State, Outcome, error) {
	st, cmd := f.Update(st, SubmitRequested{})
	if cmd != Submit {
		return st, Outcome{}, nil
	}
	out, err := s.Submit(ctx, sub, st.Values)
	st, _ = f.Update(st, SubmitDone{Err: out.EndpointErr})
	return st, out, err
}
