package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/agenthub/internal/domain"
)

const requestsSheet = "Agent Requests"

var requestHeaders = []string{
	"ID", "Title", "Status", "Company", "Agent", "Workflows",
	"Workflows Total", "Installation", "Subscription", "Invoice Total",
	"Invoice Number", "Created At",
}

// AgentRequestsWorkbook renders a hydrated agent request set as a workbook.
// Rows appear in the order given, matching the list endpoint's sort.
func AgentRequestsWorkbook(rows []domain.AgentRequestView) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range requestHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(requestsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.ID.String(),
			row.Title,
			string(row.Status),
			companyName(row),
			agentTitle(row),
			workflowNames(row),
			row.Invoice.WorkflowsTotal,
			row.Invoice.InstallationCost,
			row.Invoice.SubscriptionCost,
			row.Invoice.Total,
			row.Invoice.Number,
			row.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(requestsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}

func companyName(row domain.AgentRequestView) string {
	if row.Company != nil {
		return row.Company.Name
	}
	return row.CompanyID.String()
}

func agentTitle(row domain.AgentRequestView) string {
	if row.Agent != nil {
		return row.Agent.Title
	}
	return row.AgentID.String()
}

func workflowNames(row domain.AgentRequestView) string {
	names := make([]string, len(row.Workflows))
	for i, wf := range row.Workflows {
		names[i] = wf.Name
	}
	return strings.Join(names, ", ")
}
