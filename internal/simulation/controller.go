// Package simulation handles a simulate action of the form: it reads and
// validates the controls, calls the optimizer once and turns the answer into
// an alert.
package simulation

import (
	"context"
	"errors"
	"strings"

	"github.com/iwvelando/capital-simulator/internal/capital"
	"github.com/iwvelando/capital-simulator/internal/form"
	"github.com/iwvelando/capital-simulator/internal/optimizer"
	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/iwvelando/capital-simulator/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dispatcher starts optimization calls.
type Dispatcher interface {
	Dispatch(ctx context.Context, req optimizer.Request) *optimizer.Call
}

// OutcomeKind classifies how a submission ended.
type OutcomeKind string

const (
	OutcomeSuccess     OutcomeKind = "success"
	OutcomeValidation  OutcomeKind = "validation"
	OutcomeApplication OutcomeKind = "application"
	OutcomeTransport   OutcomeKind = "transport"
)

// Outcome is the result of one submission. Message is what was alerted.
type Outcome struct {
	Kind      OutcomeKind
	Message   string
	RequestID string
	Response  *optimizer.Response
}

// Submission holds the values read from the form.
type Submission struct {
	CapitalText string
	Capital     decimal.Decimal
	RiskProfile string
	Company     string
}

// Request builds the optimizer payload. Tickers is only set when a company
// was entered.
func (s Submission) Request() optimizer.Request {
	req := optimizer.Request{
		Capital:     s.Capital,
		RiskProfile: s.RiskProfile,
	}
	if s.Company != "" {
		req.Tickers = []string{s.Company}
	}
	return req
}

// Controller runs the simulate action against a fixed set of controls.
type Controller struct {
	controls  form.Controls
	optimizer Dispatcher
	alerter   Alerter
	logger    *zap.Logger
}

// NewController binds a Controller to its controls, optimizer and alerter.
func NewController(controls form.Controls, dispatcher Dispatcher, alerter Alerter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if alerter == nil {
		alerter = AlerterFunc(func(string) {})
	}

	return &Controller{
		controls:  controls,
		optimizer: dispatcher,
		alerter:   alerter,
		logger:    logger,
	}
}

// Collect reads the current values of the controls. It does not validate.
func (c *Controller) Collect() Submission {
	sub := Submission{}

	if c.controls.Capital != nil {
		sub.CapitalText = c.controls.Capital.Value()
	}
	sub.Capital = parseCapital(sub.CapitalText)

	if c.controls.Risk != nil {
		sub.RiskProfile = cases.Lower(language.BrazilianPortuguese).String(strings.TrimSpace(c.controls.Risk.Value()))
	}
	if c.controls.Company != nil {
		sub.Company = strings.TrimSpace(c.controls.Company.Value())
	}

	return sub
}

// Submit performs one simulate action. Every outcome is alerted; the
// returned error is a *ValidationError, *ApplicationError or *TransportError.
// The form is read once, before the request is sent.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	logger := c.logger.With(zap.String("op", "simulation.Submit"))

	sub := c.Collect()
	if err := validation.ValidateCapital(sub.Capital); err != nil {
		logger.Info("rejected simulation input", zap.String("capital", sub.CapitalText), zap.Error(err))
		return c.finish(Outcome{Kind: OutcomeValidation, Message: constants.MessageInvalidCapital},
			&ValidationError{Capital: sub.CapitalText, Err: err})
	}

	if sub.RiskProfile != "" && !validation.IsKnownRiskProfile(sub.RiskProfile) {
		logger.Warn("unknown risk profile sent to optimizer", zap.String("risk_profile", sub.RiskProfile))
	}

	call := c.optimizer.Dispatch(ctx, sub.Request())
	logger = logger.With(zap.String("request_id", call.ID()))
	logger.Info("simulation requested",
		zap.String("capital", sub.Capital.StringFixed(2)),
		zap.String("risk_profile", sub.RiskProfile),
		zap.String("company", sub.Company),
	)

	resp, err := call.Wait()
	if err != nil {
		logger.Error("simulation request failed", zap.Error(err))
		return c.finish(Outcome{Kind: OutcomeTransport, Message: constants.MessageConnectionFailed, RequestID: call.ID()},
			&TransportError{Err: err})
	}

	if !resp.Success {
		message := resp.Error
		if message == "" {
			message = constants.MessageSimulationFailed
		}
		logger.Info("optimizer rejected simulation", zap.String("error", resp.Error))
		return c.finish(Outcome{Kind: OutcomeApplication, Message: message, RequestID: call.ID(), Response: &resp},
			&ApplicationError{Message: message})
	}

	kind := "none"
	if resp.Allocation != nil {
		kind = string(resp.Allocation.Kind())
	}
	logger.Info("simulation completed", zap.String("allocation", kind))

	return c.finish(Outcome{
		Kind:      OutcomeSuccess,
		Message:   RenderSuccess(resp, sub.Company),
		RequestID: call.ID(),
		Response:  &resp,
	}, nil)
}

// parseCapital reads every digit of text as one number. Unlike the field
// formatter it neither truncates nor clamps.
func parseCapital(text string) decimal.Decimal {
	digits := capital.StripNonDigits(text)
	if digits == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return value
}

func (c *Controller) finish(outcome Outcome, err error) (Outcome, error) {
	c.alerter.Alert(outcome.Message)
	return outcome, err
}

// KindOf maps an error returned by Submit to its OutcomeKind.
func KindOf(err error) OutcomeKind {
	var (
		validationErr  *ValidationError
		applicationErr *ApplicationError
		transportErr   *TransportError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &validationErr):
		return OutcomeValidation
	case errors.As(err, &applicationErr):
		return OutcomeApplication
	case errors.As(err, &transportErr):
		return OutcomeTransport
	default:
		return OutcomeTransport
	}
}
