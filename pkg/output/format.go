// Package output provides utilities for displaying simulation outcomes.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iwvelando/capital-simulator/internal/optimizer"
	"github.com/iwvelando/capital-simulator/internal/simulation"
	"github.com/shopspring/decimal"
)

// TextFormat outputs the alert message as the user would see it.
func TextFormat(outcome simulation.Outcome) {
	fmt.Println(outcome.Message)
}

// JSONFormat outputs the outcome as a single JSON document.
func JSONFormat(outcome simulation.Outcome) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildDocument(outcome))
}

type document struct {
	Outcome        simulation.OutcomeKind `json:"outcome"`
	Message        string                 `json:"message"`
	RequestID      string                 `json:"requestId,omitempty"`
	AllocationKind string                 `json:"allocationKind,omitempty"`
	Positions      []position             `json:"positions,omitempty"`
	ExpectedReturn json.Number            `json:"expectedReturn,omitempty"`
	Risk           json.Number            `json:"risk,omitempty"`
	BestStocks     []string               `json:"bestStocks,omitempty"`
}

type position struct {
	Name   string      `json:"name"`
	Weight json.Number `json:"weight"`
	Value  json.Number `json:"value"`
}

func buildDocument(outcome simulation.Outcome) document {
	doc := document{
		Outcome:   outcome.Kind,
		Message:   outcome.Message,
		RequestID: outcome.RequestID,
	}

	resp := outcome.Response
	if resp == nil || !resp.Success {
		return doc
	}

	doc.ExpectedReturn = number(resp.ExpectedReturn)
	doc.Risk = number(resp.Risk)
	doc.BestStocks = resp.BestStocks

	switch alloc := resp.Allocation.(type) {
	case optimizer.SingleCompanyAllocation:
		doc.AllocationKind = string(alloc.Kind())
		for _, name := range alloc.Names() {
			doc.Positions = append(doc.Positions, position{
				Name:   name,
				Weight: number(alloc[name].Weight),
				Value:  number(alloc[name].Value),
			})
		}
	case optimizer.MultiTickerAllocation:
		doc.AllocationKind = string(alloc.Kind())
		for _, p := range alloc {
			doc.Positions = append(doc.Positions, position{
				Name:   p.Ticker,
				Weight: number(p.Weight),
				Value:  number(p.Value),
			})
		}
	}

	return doc
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
