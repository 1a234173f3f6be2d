// Package optimizer is the client side of the external portfolio optimization
// API. The optimizer itself is not part of this repository.
package optimizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Request is the body of an optimization call. Tickers is only sent by the
// single-company form.
type Request struct {
	Capital     decimal.Decimal
	RiskProfile string
	Tickers     []string
}

type wireRequest struct {
	Capital     json.Number `json:"capital"`
	RiskProfile string      `json:"risk_profile"`
	Tickers     []string    `json:"tickers,omitempty"`
}

// MarshalJSON encodes the capital as a JSON number rather than a string.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRequest{
		Capital:     json.Number(r.Capital.String()),
		RiskProfile: r.RiskProfile,
		Tickers:     r.Tickers,
	})
}

// Response is the decoded body returned by the optimizer.
type Response struct {
	Success        bool
	Allocation     Allocation
	ExpectedReturn decimal.Decimal
	Risk           decimal.Decimal
	BestStocks     []string
	Error          string
	Message        string
}

type wireResponse struct {
	Success        bool            `json:"success"`
	Allocation     json.RawMessage `json:"allocation"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Risk           decimal.Decimal `json:"risk"`
	BestStocks     []string        `json:"melhores_acoes"`
	Error          string          `json:"error"`
	Message        string          `json:"message"`
}

// UnmarshalJSON decodes a response, resolving the allocation into one of the
// Allocation variants.
func (r *Response) UnmarshalJSON(data []byte) error {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	allocation, err := decodeAllocation(wire.Allocation)
	if err != nil {
		return err
	}

	*r = Response{
		Success:        wire.Success,
		Allocation:     allocation,
		ExpectedReturn: wire.ExpectedReturn,
		Risk:           wire.Risk,
		BestStocks:     wire.BestStocks,
		Error:          wire.Error,
		Message:        wire.Message,
	}
	return nil
}

// AllocationKind discriminates the allocation shapes the optimizer returns.
type AllocationKind string

const (
	KindSingleCompany AllocationKind = "single_company"
	KindMultiTicker   AllocationKind = "multi_ticker"
)

// Allocation is either a SingleCompanyAllocation or a MultiTickerAllocation.
type Allocation interface {
	Kind() AllocationKind
}

// Position is the share of capital assigned to one company.
type Position struct {
	Weight decimal.Decimal `json:"peso"`
	Value  decimal.Decimal `json:"valor"`
}

// SingleCompanyAllocation maps a company (or ticker) name to its position.
type SingleCompanyAllocation map[string]Position

// Kind implements Allocation.
func (SingleCompanyAllocation) Kind() AllocationKind { return KindSingleCompany }

// Names returns the allocated names in lexical order.
func (a SingleCompanyAllocation) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TickerPosition is one record of a multi-ticker allocation.
type TickerPosition struct {
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"peso_percentual"`
	Value  decimal.Decimal `json:"valor_investido"`
}

// MultiTickerAllocation lists positions in the order the optimizer sent them.
type MultiTickerAllocation []TickerPosition

// Kind implements Allocation.
func (MultiTickerAllocation) Kind() AllocationKind { return KindMultiTicker }

func decodeAllocation(raw json.RawMessage) (Allocation, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var single SingleCompanyAllocation
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("decode single company allocation: %w", err)
		}
		return single, nil
	case '[':
		var multi MultiTickerAllocation
		if err := json.Unmarshal(trimmed, &multi); err != nil {
			return nil, fmt.Errorf("decode multi ticker allocation: %w", err)
		}
		return multi, nil
	default:
		return nil, fmt.Errorf("unexpected allocation %s", trimmed)
	}
}
