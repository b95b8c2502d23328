package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"circdash/internal/config"
)

func TestInferStatus(t *testing.T) {
	rules := config.Load().StatusRules

	cases := []struct {
		name            string
		transactionType string
		want            string
	}{
		{"lost flag", "LOST-ASSUM", "Lost"},
		{"missing flag", "MISSING-INVENTORY", "Missing"},
		{"withdrawn flag", "WITHDRAWN", "Withdrawn"},
		{"charge", "CHARGE", "Likely on loan"},
		{"lowercase checkout", "checkout", "Likely on loan"},
		{"checkin", "CHECKIN", "Likely available"},
		{"renewal", "RENEW", "Likely available"},
		{"unrecognized", "TRANSIT", "Unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transactions := []Transaction{{TransactionType: tc.transactionType}}
			assert.Equal(t, tc.want, InferStatus(transactions, rules))
		})
	}
}

func TestInferStatusEmptyHistory(t *testing.T) {
	assert.Equal(t, "Unknown", InferStatus(nil, config.Load().StatusRules))
}

func TestInferStatusUsesLastTransaction(t *testing.T) {
	rules := config.Load().StatusRules
	transactions := []Transaction{
		{TransactionType: "CHARGE"},
		{TransactionType: "LOST"},
	}

	assert.Equal(t, "Lost", InferStatus(transactions, rules))
}
