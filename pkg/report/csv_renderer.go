package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type CsvRendererImpl struct {
	currency string
}

func NewCsvRenderer(currency string) *CsvRendererImpl {
	return &CsvRendererImpl{currency: currency}
}

// Render produces the monthly summary as CSV: a header, one row per budgeted
// category, and the income/expenses/net totals.
func (t *CsvRendererImpl) Render(summary MonthlySummary) (string, error) {
	data := make([][]string, 0, len(summary.Lines)+5)
	data = append(data, []string{"Category", "Budgeted", "Spent", "Delta"})
	for _, line := range summary.Lines {
		data = append(data, []string{
			line.Category,
			t.money(line.Budgeted.StringFixed(2)),
			t.money(line.Spent.StringFixed(2)),
			t.money(line.Delta.StringFixed(2)),
		})
	}
	data = append(data,
		[]string{},
		[]string{"Total income", t.money(summary.Net.Income.StringFixed(2))},
		[]string{"Total expenses", t.money(summary.Net.Expenses.StringFixed(2))},
		[]string{"Net", t.money(summary.Net.Net.StringFixed(2))},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func (t *CsvRendererImpl) money(amount string) string {
	return fmt.Sprintf("%s%s", t.currency, amount)
}
