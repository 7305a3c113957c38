// Package export reads and writes expense data as CSV. The expense format
// is a three-column table (Date, Category, Amount) so exports open cleanly
// in spreadsheet tools; imports accept the same columns in any order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/model"
)

// expenseHeader is the canonical expense CSV column order.
var expenseHeader = []string{"Date", "Category", "Amount"}

// debtHeader is the canonical debt CSV column order.
var debtHeader = []string{"Name", "Balance", "Interest Rate", "Minimum Payment"}

// Expenses writes expenses as CSV with a Date,Category,Amount header.
func Expenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("failed to write expense header: %w", err)
	}
	for _, e := range expenses {
		record := []string{
			e.Date.Format("2006-01-02"),
			e.Category.String(),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Debts writes debts as CSV with a Name,Balance,Interest Rate,Minimum
// Payment header.
func Debts(w io.Writer, debts []model.Debt) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(debtHeader); err != nil {
		return fmt.Errorf("failed to write debt header: %w", err)
	}
	for _, d := range debts {
		record := []string{
			d.Name,
			strconv.FormatFloat(d.Balance, 'f', 2, 64),
			strconv.FormatFloat(d.InterestRate, 'f', 2, 64),
			strconv.FormatFloat(d.MinPayment, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write debt %s: %w", d.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExpensesFile exports expenses to path, creating parent directories
// as needed.
func WriteExpensesFile(path string, expenses []model.Expense) error {
	return writeFile(path, func(w io.Writer) error { return Expenses(w, expenses) })
}

// WriteDebtsFile exports debts to path, creating parent directories as
// needed.
func WriteDebtsFile(path string, debts []model.Debt) error {
	return writeFile(path, func(w io.Writer) error { return Debts(w, debts) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadExpenses parses expense rows from CSV. The first row must be a header
// naming at least Category and Amount columns, matched case-insensitively
// in any order. Rows without a date use fallbackDate.
//
// Row IDs are derived from the row content and position, so importing the
// same file twice produces identical IDs and the storage layer's
// insert-or-ignore keeps the import idempotent.
func ReadExpenses(r io.Reader, fallbackDate time.Time) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	categoryCol, ok := columns["category"]
	if !ok {
		return nil, fmt.Errorf("missing Category column")
	}
	amountCol, ok := columns["amount"]
	if !ok {
		return nil, fmt.Errorf("missing Amount column")
	}
	dateCol, hasDate := columns["date"]

	if len(rows) == 1 {
		return nil, fmt.Errorf("no expense rows found")
	}

	expenses := make([]model.Expense, 0, len(rows)-1)
	for i, row := range rows[1:] {
		expense, err := parseExpenseRow(row, i, categoryCol, amountCol, dateCol, hasDate, fallbackDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// ReadExpensesFile imports expenses from a CSV file on disk.
func ReadExpensesFile(path string, fallbackDate time.Time) ([]model.Expense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadExpenses(f, fallbackDate)
}

func parseExpenseRow(row []string, index, categoryCol, amountCol, dateCol int, hasDate bool, fallbackDate time.Time) (model.Expense, error) {
	category, err := model.ParseCategory(strings.TrimSpace(row[categoryCol]))
	if err != nil {
		return model.Expense{}, err
	}

	amountText := strings.TrimSpace(row[amountCol])
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		return model.Expense{}, fmt.Errorf("invalid amount %q", amountText)
	}
	if amount <= 0 {
		return model.Expense{}, fmt.Errorf("amount must be positive, got %s", amountText)
	}

	date := fallbackDate
	if hasDate {
		if dateText := strings.TrimSpace(row[dateCol]); dateText != "" {
			date, err = time.Parse("2006-01-02", dateText)
			if err != nil {
				return model.Expense{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateText)
			}
		}
	}

	seed := fmt.Sprintf("%s|%s|%s|%d", date.Format("2006-01-02"), category, amountText, index)
	return model.Expense{
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String(),
		Date:       date,
		Amount:     amount,
		Category:   category,
		Confidence: 1,
		Source:     model.SourceImport,
	}, nil
}
