package simulation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/capital-simulator/internal/optimizer"
	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/iwvelando/capital-simulator/pkg/format"
)

// RenderSuccess composes the alert for a successful response. company is the
// name sent with the request, or "" for the risk-profile-only form.
func RenderSuccess(resp optimizer.Response, company string) string {
	var sb strings.Builder
	sb.WriteString(constants.MessageSimulationDone)
	sb.WriteString("\n\n")

	switch alloc := resp.Allocation.(type) {
	case optimizer.SingleCompanyAllocation:
		writeCompanies(&sb, alloc, company)
		writeSummary(&sb, resp)
	case optimizer.MultiTickerAllocation:
		sb.WriteString("Distribuição:\n")
		sb.WriteString(strings.Join(DistributionLines(alloc), "\n"))
		sb.WriteString("\n\n")
		writeSummary(&sb, resp)
		if len(resp.BestStocks) > 0 {
			sb.WriteString("\n\nMelhores ações: ")
			sb.WriteString(strings.Join(resp.BestStocks, ", "))
		}
	default:
		writeSummary(&sb, resp)
	}

	if msg := strings.TrimSpace(resp.Message); msg != "" {
		sb.WriteString("\n\n")
		sb.WriteString(msg)
	}

	return sb.String()
}

// DistributionLines renders one line per position, in the order received:
// "<ticker>: <weight>% (R$ <value>)".
func DistributionLines(alloc optimizer.MultiTickerAllocation) []string {
	lines := make([]string, 0, len(alloc))
	for _, position := range alloc {
		lines = append(lines, fmt.Sprintf("%s: %s%% (%s)",
			position.Ticker,
			format.Number(position.Weight),
			format.Currency(position.Value),
		))
	}
	return lines
}

// writeCompanies renders the requested company, or every allocated company
// when the optimizer did not key its answer by that name.
func writeCompanies(sb *strings.Builder, alloc optimizer.SingleCompanyAllocation, company string) {
	names := alloc.Names()
	if _, ok := alloc[company]; ok {
		names = []string{company}
	}

	for _, name := range names {
		position := alloc[name]
		fmt.Fprintf(sb, "Empresa: %s\n", name)
		fmt.Fprintf(sb, "Peso: %s%%\n", format.Number(position.Weight))
		fmt.Fprintf(sb, "Valor investido: R$%s\n", format.Number(position.Value))
		if len(names) > 1 {
			sb.WriteString("\n")
		}
	}
}

func writeSummary(sb *strings.Builder, resp optimizer.Response) {
	fmt.Fprintf(sb, "Retorno esperado: %s%%\n", format.Number(resp.ExpectedReturn))
	fmt.Fprintf(sb, "Risco: %s%%", format.Number(resp.Risk))
}
