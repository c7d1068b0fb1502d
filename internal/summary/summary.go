package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claritybank/badge-server/internal/badges"
)

// EmptyHistoryMessage is returned instead of asking the model about nothing.
const EmptyHistoryMessage = "There are no transactions available to analyze."

// TransactionForAI is the reduced view of a transaction the model sees.
type TransactionForAI struct {
	Type     badges.Direction `json:"type"`
	Amount   float64          `json:"amount"`
	Category string           `json:"category"`
	Date     string           `json:"date"`
}

// Project reduces transactions to what the model needs. Dates are rendered in
// loc as yyyy-MM-dd; records without a timestamp are skipped.
func Project(txs []badges.Transaction, loc *time.Location) []TransactionForAI {
	out := make([]TransactionForAI, 0, len(txs))
	for _, tx := range txs {
		if tx.OccurredAt.IsZero() {
			continue
		}
		out = append(out, TransactionForAI{
			Type:     tx.Direction,
			Amount:   tx.Amount.InexactFloat64(),
			Category: string(tx.Category),
			Date:     tx.OccurredAt.In(loc).Format(time.DateOnly),
		})
	}
	return out
}

// Summarizer turns a transaction projection into a short narrative.
type Summarizer interface {
	Summarize(ctx context.Context, txs []TransactionForAI) (string, error)
}

const promptTemplate = `You are a helpful and friendly financial assistant named Clarity.
Your goal is to provide a concise, 2-3 sentence summary of a user's recent transaction history.
Analyze the provided JSON data to identify key patterns, trends, or notable activities.

Focus on:
- Overall spending vs. saving habits.
- Top spending categories.
- Any significant or unusual transactions (large deposits or withdrawals).
- Consistency in income or spending.

Do not just list the data. Provide a warm, encouraging, and insightful narrative.
Address the user directly (e.g., "You've been...").

Return ONLY valid raw JSON of the form {"summary": "<your summary>"}.
Do NOT wrap the response in code fences.

Here is the user's recent transaction data:
%s
`

func buildPrompt(txs []TransactionForAI) (string, error) {
	data, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}

type modelOutput struct {
	Summary string `json:"summary"`
}

func parseOutput(raw string) (string, error) {
	var out modelOutput
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &out); err != nil {
		return "", fmt.Errorf("unmarshal model output: %w", err)
	}
	out.Summary = strings.TrimSpace(out.Summary)
	if out.Summary == "" {
		return "", errors.New("model returned an empty summary")
	}
	return out.Summary, nil
}

// cleanModelJSON strips Markdown fences the model may add despite the prompt.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
