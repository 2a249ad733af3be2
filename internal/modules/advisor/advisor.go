package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

// Service generates free-form trading guidance text with Gemini. The rest of
// the system treats the returned text as opaque; nothing downstream parses it.
// With no API key the service runs disabled and answers with a fixed notice
// instead of failing.
type Service struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// New creates the advisory service. An empty API key yields a disabled
// service, not an error.
func New(ctx context.Context, apiKey, model string, log zerolog.Logger) (*Service, error) {
	s := &Service{
		model: model,
		log:   log.With().Str("service", "advisor").Logger(),
	}

	if apiKey == "" {
		s.log.Warn().Msg("No Gemini API key configured, AI advisor disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.client = client
	return s, nil
}

// Enabled reports whether a Gemini client is configured
func (s *Service) Enabled() bool {
	return s.client != nil
}

// AnalyzeTrades asks for a handful of actionable observations about the
// user's wheel-strategy performance
func (s *Service) AnalyzeTrades(ctx context.Context, trades []trading.Trade) (string, error) {
	if len(trades) == 0 {
		return "Add some trades to get AI analysis.", nil
	}
	if s.client == nil {
		return "AI advisor is not configured. Set GEMINI_API_KEY to enable insights.", nil
	}

	prompt := "Analyze the following options wheel strategy trades and provide 3-4 actionable " +
		"insights or observations about the user's performance and strategy. " +
		"Keep it professional and concise.\n\n" + tradeSummary(trades)

	return s.generate(ctx, prompt, 0.7)
}

// TickerInsight asks for market context on one symbol and whether it suits
// the wheel strategy
func (s *Service) TickerInsight(ctx context.Context, ticker string) (string, error) {
	if s.client == nil {
		return "AI advisor is not configured. Set GEMINI_API_KEY to enable insights.", nil
	}

	prompt := fmt.Sprintf("Provide a quick summary of the current market sentiment and key price "+
		"levels for the stock ticker: %s. Is it typically a good candidate for the Wheel Strategy "+
		"(low/medium volatility)?", strings.ToUpper(strings.TrimSpace(ticker)))

	return s.generate(ctx, prompt, 0.5)
}

func (s *Service) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(temperature),
		})
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "Unable to generate analysis at this time.", nil
	}

	return text, nil
}

// tradeSummary renders one line per trade for the prompt
func tradeSummary(trades []trading.Trade) string {
	lines := make([]string, 0, len(trades))
	for _, t := range trades {
		lines = append(lines, fmt.Sprintf("%s: %s @ $%g, Premium: $%g, Status: %s",
			t.Ticker, t.Type, t.StrikePrice, t.Premium, t.Status))
	}
	return strings.Join(lines, "\n")
}
