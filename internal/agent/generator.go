package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdul234Malik/NELFUND/internal/llm"
)

// GreetingAnswer is the canned response for greeting queries. It is returned
// without any external call so greetings are cheap and always succeed.
const GreetingAnswer = "Hello 👋 I can help you understand the NELFUND student loan. " +
	"Ask me about eligibility, application steps, or repayment."

// NoContextAnswer is returned when retrieval produced nothing to ground an
// answer on. This is an expected state (index not yet populated, or the
// question is outside the documents), distinct from a generation failure.
const NoContextAnswer = `I apologize, but I couldn't find any relevant information in the knowledge base to answer your question. This might mean:

1. The database needs to be populated with documents (run the ingestion command)
2. Your question might need to be rephrased
3. The information might not be available in the current documents

Please try asking about NELFUND student loan eligibility, application process, or repayment plans.`

const systemPrompt = `You are an assistant answering questions about the Nigerian Student Loan (NELFUND).

Rules:
- Answer ONLY from the context provided below
- If the answer is not in the documents, say "I don't have that specific information in the available documents, but based on what I know about NELFUND, I can tell you..."
- Be clear, concise, and helpful
- Cite sources when applicable
- If the context doesn't contain the answer, still try to provide helpful general guidance about NELFUND`

// Generator produces the final answer for a classified query.
type Generator struct {
	provider    llm.Provider
	model       string
	temperature float64
}

// NewGenerator creates a Generator that answers policy questions through the
// given provider and model.
func NewGenerator(provider llm.Provider, model string, temperature float64) *Generator {
	return &Generator{provider: provider, model: model, temperature: temperature}
}

// Generate returns the answer and the source labels backing it.
//
// Greetings get a canned message with no sources. Policy questions with no
// retrieved context get the fixed "no information" message with no sources.
// Otherwise a single grounded completion is made; if the provider fails, the
// failure reason becomes the answer and the sources already known from
// retrieval are preserved so citation information is not lost.
func (g *Generator) Generate(ctx context.Context, intent Intent, query, contextText string, sources []string) (string, []string) {
	if intent == IntentGreeting {
		return GreetingAnswer, []string{}
	}

	if strings.TrimSpace(contextText) == "" {
		return NoContextAnswer, []string{}
	}

	prompt := buildGroundedPrompt(contextText, query)

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return fmt.Sprintf("Error generating answer: %v", err), sources
	}

	return resp.Content, sources
}

func buildGroundedPrompt(contextText, query string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\nContext:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\nQuestion:\n")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer:\n")
	return sb.String()
}
