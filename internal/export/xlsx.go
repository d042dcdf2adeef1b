package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// XLSXContentType is the media type of SummaryXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	summarySheet = "Resumo"
	debtSheet    = "Fiado"
	budgetSheet  = "Orçamento"
)

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// SummaryXLSX writes a workbook with the financial summary, the open tabs and,
// when budget is not nil, the budget-vs-actual lines.
func SummaryXLSX(w io.Writer, summary *domain.FinancialSummary, budget *domain.BudgetReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}

	rows := [][]any{
		{"Indicador", "Valor"},
		{"Receita inscrições", money(summary.InscriptionRevenue)},
		{"Receita cantina", money(summary.CanteenRevenue)},
		{"Outras receitas", money(summary.OtherRevenue)},
		{"Receita total", money(summary.TotalRevenue)},
		{"CMV (vendas)", money(summary.AccrualCOGS)},
		{"Custo cantina (caixa)", money(summary.CashCanteenCost)},
		{"Margem bruta cantina", money(summary.GrossCanteenMargin)},
		{"Aluguel chácara", money(summary.FixedCostRent)},
		{"Outras despesas", money(summary.OtherExpenses)},
		{"Despesas totais", money(summary.TotalExpenses)},
		{"Lucro líquido", money(summary.NetProfit)},
		{"Margem", summary.Margin.Round(4).InexactFloat64()},
		{"A receber inscrições", money(summary.Receivables)},
		{"Fiado pendente", money(summary.PendingDebt)},
		{"Valor em estoque", money(summary.StockValue)},
		{"Gerado em", summary.GeneratedAt.Format("02/01/2006 15:04")},
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	debtRows := [][]any{{"Pessoa", "Vendas", "Total", "Mais antiga"}}
	for _, d := range summary.Debts {
		debtRows = append(debtRows, []any{d.PersonName, d.SaleCount, money(d.Total), d.OldestSale.Format("02/01/2006")})
	}
	if err := addSheet(f, debtSheet, debtRows); err != nil {
		return err
	}

	if budget != nil {
		budgetRows := [][]any{{"Categoria", "Planejado", "Executado"}}
		for _, line := range budget.Lines {
			budgetRows = append(budgetRows, []any{string(line.Category), money(line.Planned), money(line.Executed)})
		}
		budgetRows = append(budgetRows, []any{"Total", money(budget.TotalPlanned), money(budget.TotalExecuted)})
		if err := addSheet(f, budgetSheet, budgetRows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := slices.Clone(row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to fill sheet %s: %w", sheet, err)
		}
	}
	return nil
}
