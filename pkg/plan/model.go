package plan

import "context"

// Model generates free text for a prompt. Implementations block until the
// full reply is available.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// systemInstruction frames every prompt so that the reply carries a JSON plan.
const systemInstruction = `You are a personal finance assistant.
Turn the user's request into a monthly budget plan.
Reply with a single JSON object inside a ` + "```json" + ` fenced block.
Use the keys "title", "income", "total_budget", "allocations" (a list of objects with
"category", "amount" and "note") and "tips" (a list of strings).
Amounts are plain numbers without currency symbols or thousands separators.`
