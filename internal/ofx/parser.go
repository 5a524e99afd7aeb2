// Package ofx turns OFX/QFX bank exports into ledger expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is an expense read from a statement, with the identifiers needed
// to recognize the same transaction appearing in overlapping exports.
type Entry struct {
	AccountID string
	FitID     string
	Expense   model.Expense
}

// Key identifies the statement line across files.
func (e Entry) Key() string {
	return e.AccountID + "/" + e.FitID
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML exports sometimes drop the closing bracket of bare tags
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns its debits as expenses.
// Credits (deposits, refunds) are not expenses and are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var skipped int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		e, s := p.convertTransactions(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
		entries = append(entries, e...)
		skipped += s
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		e, s := p.convertTransactions(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
		entries = append(entries, e...)
		skipped += s
	}

	slog.Info("Parsed OFX file",
		"expenses", len(entries),
		"skipped_credits", skipped)

	return entries, nil
}

func (p *Parser) convertTransactions(txns []ofxgo.Transaction, accountID string) ([]Entry, int) {
	entries := make([]Entry, 0, len(txns))
	skipped := 0

	for _, ofxTx := range txns {
		// OFX uses negative amounts for money leaving the account
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			skipped++
			continue
		}

		entries = append(entries, Entry{
			AccountID: accountID,
			FitID:     string(ofxTx.FiTID),
			Expense: model.Expense{
				Title:  p.extractMerchantName(ofxTx),
				Amount: -amount,
				Date:   ofxTx.DtPosted.Format(model.DateLayout),
			},
		})
	}

	return entries, skipped
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// MEMO often carries the merchant when NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " authorization dates
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	default:
		return false
	}
}
