package aria2

import (
	"context"
	"encoding/json"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

// Dispatcher submits finalized link selections to aria2. One batched
// system.multicall is preferred; when the multicall request itself fails the
// dispatcher falls back to sequential per-link addUri calls.
type Dispatcher struct {
	client *Client
	logger arbor.ILogger
}

// NewDispatcher creates a dispatcher over an RPC client
func NewDispatcher(client *Client, logger arbor.ILogger) *Dispatcher {
	return &Dispatcher{
		client: client,
		logger: logger,
	}
}

// multicallSpec is one call inside a system.multicall request
type multicallSpec struct {
	MethodName string        `json:"methodName"`
	Params     []interface{} `json:"params"`
}

// multicallFault is the XML-RPC style fault object aria2 embeds in multicall
// entries. It arrives either bare or wrapped in a one-element array.
type multicallFault struct {
	FaultCode   int    `json:"faultCode"`
	FaultString string `json:"faultString"`
}

// Push submits the links. Per-link failures are reported in the outcome,
// never as an error; an error return means the whole operation failed (both
// the multicall and every sequential call died on transport).
func (d *Dispatcher) Push(ctx context.Context, links []models.LinkRecord) (*models.PushOutcome, error) {
	if len(links) == 0 {
		return &models.PushOutcome{Succeeded: 0, Failed: []models.PushFailure{}}, nil
	}

	outcome, err := d.pushMulticall(ctx, links)
	if err == nil {
		return outcome, nil
	}

	d.logger.Warn().
		Err(err).
		Int("links", len(links)).
		Msg("Multicall failed, falling back to sequential addUri")

	return d.pushSequential(ctx, links)
}

// pushMulticall wraps one aria2.addUri call per link into a single
// system.multicall and parses the per-call result array positionally
func (d *Dispatcher) pushMulticall(ctx context.Context, links []models.LinkRecord) (*models.PushOutcome, error) {
	calls := make([]multicallSpec, len(links))
	for i, link := range links {
		calls[i] = multicallSpec{
			MethodName: "aria2.addUri",
			Params:     d.client.buildAddURIParams(link.URL),
		}
	}

	var entries []json.RawMessage
	if err := d.client.Call(ctx, "system.multicall", []interface{}{calls}, &entries); err != nil {
		return nil, err
	}

	outcome := &models.PushOutcome{Failed: []models.PushFailure{}}
	for i, entry := range entries {
		if i >= len(links) {
			break
		}
		if fault, ok := parseFault(entry); ok {
			reason := fault.FaultString
			if reason == "" {
				reason = "unknown rpc fault"
			}
			outcome.Failed = append(outcome.Failed, models.PushFailure{
				URL:    links[i].URL,
				Reason: reason,
			})
			continue
		}
		outcome.Succeeded++
	}

	// Entries the response never covered still count as submitted links;
	// aria2 aligns the array positionally, so a short response is a fault of
	// its own.
	for i := len(entries); i < len(links); i++ {
		outcome.Failed = append(outcome.Failed, models.PushFailure{
			URL:    links[i].URL,
			Reason: "missing multicall response entry",
		})
	}

	d.logger.Debug().
		Int("succeeded", outcome.Succeeded).
		Int("failed", len(outcome.Failed)).
		Msg("Multicall push completed")

	return outcome, nil
}

// parseFault detects a fault-shaped multicall entry, unwrapping the
// one-element array form when present
func parseFault(entry json.RawMessage) (multicallFault, bool) {
	var fault multicallFault

	var wrapped []json.RawMessage
	if err := json.Unmarshal(entry, &wrapped); err == nil && len(wrapped) == 1 {
		entry = wrapped[0]
	}

	if err := json.Unmarshal(entry, &fault); err != nil {
		return fault, false
	}
	return fault, fault.FaultCode != 0 || fault.FaultString != ""
}

// pushSequential issues one addUri call per link, each independently caught.
// The underlying failure propagates only when nothing succeeded and every
// failure was a transport failure, meaning the endpoint was never reachable.
func (d *Dispatcher) pushSequential(ctx context.Context, links []models.LinkRecord) (*models.PushOutcome, error) {
	outcome := &models.PushOutcome{Failed: []models.PushFailure{}}

	var firstErr error
	allTransport := true

	for _, link := range links {
		var gid string
		err := d.client.Call(ctx, "aria2.addUri", d.client.buildAddURIParams(link.URL), &gid)
		if err == nil {
			outcome.Succeeded++
			continue
		}

		if firstErr == nil {
			firstErr = err
		}
		if !IsTransportError(err) {
			allTransport = false
		}
		outcome.Failed = append(outcome.Failed, models.PushFailure{
			URL:    link.URL,
			Reason: err.Error(),
		})
	}

	if outcome.Succeeded == 0 && allTransport && firstErr != nil {
		return nil, firstErr
	}

	d.logger.Debug().
		Int("succeeded", outcome.Succeeded).
		Int("failed", len(outcome.Failed)).
		Msg("Sequential push completed")

	return outcome, nil
}
