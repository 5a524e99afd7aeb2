package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/ofx"
	"github.com/Veraticus/fintrack/internal/service"
	"github.com/Veraticus/fintrack/internal/sheets"
	"github.com/Veraticus/fintrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkingOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240301120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>9876
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240201120000[0:GMT]
<DTEND>20240229120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240205120000[0:GMT]
<TRNAMT>-42.10
<FITID>F1
<NAME>GROCERY MART
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240210120000[0:GMT]
<TRNAMT>1500.00
<FITID>F2
<NAME>PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240212120000[0:GMT]
<TRNAMT>-8.00
<FITID>F3
<NAME>POS PURCHASE COFFEE CART
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240229120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeOFX(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(checkingOFX), 0o600))
	return path
}

func TestImportOFX(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	writeOFX(t, dir, "feb.qfx")
	writeOFX(t, dir, "feb-again.qfx")
	c.mustRun("categories", "add", "Imported")

	out := c.mustRun("import-ofx", filepath.Join(dir, "*.qfx"), "--dry-run")
	assert.Contains(t, out, "Dry run: would import 2 expenses (2 duplicates skipped)")
	assert.Contains(t, out, "GROCERY MART")

	out = c.mustRun("expenses", "list")
	assert.Contains(t, out, "No expenses recorded yet")

	out = c.mustRun("import-ofx", filepath.Join(dir, "*.qfx"), "--category", "1")
	assert.Contains(t, out, "Imported 2 expenses from 2 files (2 duplicates skipped)")

	out = c.mustRun("expenses", "search", "2024-02-12")
	assert.Contains(t, out, "COFFEE CART")
	assert.Contains(t, out, "8.00")

	out = c.mustRun("report", "categories")
	assert.Regexp(t, `Imported\s+50\.10`, out)
}

func TestImportOFX_Errors(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()

	_, err := c.run("import-ofx", filepath.Join(dir, "missing.qfx"))
	assert.ErrorContains(t, err, "no files found to import")

	bad := filepath.Join(dir, "bad.qfx")
	require.NoError(t, os.WriteFile(bad, []byte("not ofx"), 0o600))
	_, err = c.run("import-ofx", bad)
	assert.ErrorContains(t, err, "failed to parse bad.qfx")
}

func TestMergeEntries(t *testing.T) {
	entry := func(acct, fitID, title string) ofx.Entry {
		return ofx.Entry{AccountID: acct, FitID: fitID, Expense: model.Expense{Title: title}}
	}

	expenses, duplicates := mergeEntries([][]ofx.Entry{
		{entry("A", "1", "first"), entry("A", "2", "second")},
		{entry("A", "1", "first again"), entry("B", "1", "other account"), entry("B", "", "no fitid"), entry("B", "", "no fitid")},
	})

	assert.Equal(t, 1, duplicates)
	require.Len(t, expenses, 5)
	assert.Equal(t, "first", expenses[0].Title)
	assert.Equal(t, "other account", expenses[2].Title)
}

func TestBuildReport(t *testing.T) {
	db := testutil.SetupTestDB(t, "Food")
	db.MustAddExpense("Lunch", 10, "2024-01-15", "Food")
	ctx := context.Background()
	_, err := db.Ledger.CreateBudget(ctx, "2024-01", 5)
	require.NoError(t, err)
	_, err = db.Ledger.CreateSubscription(ctx, "Gym", 30, "2024-02-01")
	require.NoError(t, err)

	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	report, err := buildReport(ctx, db.Ledger, "2024-01", now)
	require.NoError(t, err)

	assert.Equal(t, now, report.GeneratedAt)
	assert.Len(t, report.Categories, 1)
	assert.Equal(t, []model.CategoryTotal{{Name: "Food", Total: 10}}, report.CategoryTotals)
	assert.Len(t, report.Expenses, 1)
	assert.Len(t, report.Subscriptions, 1)
	assert.Len(t, report.Budgets, 1)
	require.NotNil(t, report.Alert)
	assert.Equal(t, model.AlertExceeded, report.Alert.Status)

	report, err = buildReport(ctx, db.Ledger, "", now)
	require.NoError(t, err)
	assert.Nil(t, report.Alert)
}

func TestExportSheets(t *testing.T) {
	mock := sheets.NewMockWriter()
	original := newReportWriter
	newReportWriter = func(context.Context) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newReportWriter = original })

	c := newCLI(t)
	c.mustRun("expenses", "add", "Lunch", "10", "2024-01-15")

	out := c.mustRun("export", "sheets", "--month", "2024-01")

	assert.Contains(t, out, "Exported 1 expenses to Google Sheets")
	assert.Equal(t, 1, mock.WriteCalls)
	require.NotNil(t, mock.LastReport)
	require.NotNil(t, mock.LastReport.Alert)
	assert.Equal(t, model.AlertNoBudget, mock.LastReport.Alert.Status)
}

func TestExportSheets_WriteError(t *testing.T) {
	mock := sheets.NewMockWriter()
	mock.WriteFunc = func(context.Context, *service.Report) error { return errors.New("quota") }
	original := newReportWriter
	newReportWriter = func(context.Context) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newReportWriter = original })

	c := newCLI(t)

	_, err := c.run("export", "sheets")
	assert.ErrorContains(t, err, "failed to export report: quota")
}

func TestExportSheets_MissingCredentials(t *testing.T) {
	for _, env := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(env, "")
	}
	c := newCLI(t)

	_, err := c.run("export", "sheets")
	assert.ErrorContains(t, err, "no authentication method configured")
}
