package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lucasmeira/pirata-backend/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// DeckGenerator produces the deck for a round. Failure is expected (API
// outages, malformed completions); the coordinator covers it with
// FallbackDeck so the round loop never stalls.
type DeckGenerator interface {
	Generate(ctx context.Context, count int) ([]models.OfferCard, error)
}

const deckSystemPrompt = `You generate offer cards for a web game about spotting counterfeit sportswear listings.
Respond ONLY with valid UTF-8 JSON, no comments, no markdown.
Follow this schema strictly:
OfferCard = {
  "id": string (uuid),
  "product": "t-shirt"|"sneakers"|"cap"|"jacket"|"socks"|"shorts",
  "brand": string,
  "price": number,
  "original_price": number|null,
  "shipping_info": string,
  "description": string,
  "photos": number,
  "signals": string[],
  "label": "authentic"|"counterfeit",
  "difficulty": 1|2|3
}
Return an object {"cards": OfferCard[]} with exactly N cards.
Balance 50% authentic / 50% counterfeit and distribute difficulty (1: 50%, 2: 35%, 3: 15%).
Avoid real brand names.`

const deckUserPrompt = `Generate N=%d varied, coherent cards themed around online sportswear listings.
"counterfeit" criteria:
- price at least 60%% below original_price, OR clear textual hints ("replica", "AAA quality", "seller warranty", misspellings, altered logos).
- vague or suspicious shipping_info (no tracking, "fast international").
"authentic" criteria:
- price between 70%% and 100%% of original_price (or a realistic price without an original).
- clean description, coherent shipping_info (delivery window, tracking).
Rules:
- price between 20 and 900 for t-shirts/caps/socks; up to 1500 for sneakers/jackets.
- signals must point at REAL clues present in the card itself.
- photos: 0-3 (no URLs).
Return only {"cards":[...]}.`

// OpenAIDeckGenerator asks a chat model for a JSON deck.
type OpenAIDeckGenerator struct {
	client openai.Client
	model  string
	log    *zap.SugaredLogger
}

func NewOpenAIDeckGenerator(apiKey, model string, log *zap.SugaredLogger) *OpenAIDeckGenerator {
	return &OpenAIDeckGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		log:    log,
	}
}

func (g *OpenAIDeckGenerator) Generate(ctx context.Context, count int) ([]models.OfferCard, error) {
	g.log.Infof("[deck] generating %d cards", count)

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(deckSystemPrompt),
			openai.UserMessage(fmt.Sprintf(deckUserPrompt, count)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(1.1),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var payload struct {
		Cards []models.OfferCard `json:"cards"`
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if len(payload.Cards) == 0 {
		return nil, fmt.Errorf("decoded deck is empty")
	}

	for i := range payload.Cards {
		if payload.Cards[i].ID == "" {
			payload.Cards[i].ID = uuid.NewString()
		}
	}

	g.log.Infof("[deck] generated %d cards", len(payload.Cards))
	return payload.Cards, nil
}

// FallbackDeck is the deterministic single-card deck used when generation
// fails. The fixed id keeps repeated fallbacks stable for clients.
func FallbackDeck() []models.OfferCard {
	original := 240.0
	return []models.OfferCard{{
		ID:            "fallback-offer-1",
		Product:       "sneakers",
		Brand:         "Veloz",
		Price:         79.9,
		OriginalPrice: &original,
		ShippingInfo:  "Fast international, no tracking",
		Description:   "Original Veloz runner, AAA quality, seller warranty.",
		Photos:        1,
		Signals:       []string{"price far below original", "seller warranty only", "no tracking"},
		Label:         models.LabelCounterfeit,
		Difficulty:    1,
	}}
}
