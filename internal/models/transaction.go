package models

import "strings"

// TransactionStatus enumerates payment states.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
	TransactionPending   TransactionStatus = "Pending"
	TransactionDenied    TransactionStatus = "Denied"
)

// TransactionStatuses lists selectable transaction statuses.
var TransactionStatuses = []TransactionStatus{TransactionCompleted, TransactionPending, TransactionDenied}

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	for _, known := range TransactionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Transaction is a patient payment record.
type Transaction struct {
	ID            string            `json:"_id"`
	PatientName   string            `json:"patientName"`
	AccountNumber LooseString       `json:"accountNumber,omitempty"`
	Amount        LooseString       `json:"amount"`
	DateAndTime   Timestamp         `json:"dateAndTime,omitempty"`
	Status        TransactionStatus `json:"status"`
}

// MaskedAccount keeps only the last four characters of the account number.
func (t Transaction) MaskedAccount() string {
	account := strings.TrimSpace(string(t.AccountNumber))
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}

// EarningsSummary aggregates billing totals for the admin billing view.
type EarningsSummary struct {
	TotalEarnings LooseString  `json:"totalEarnings"`
	Recent        *Transaction `json:"recent,omitempty"`
}
