package ingestion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"SnapShelf-Backend/pkg/openai"
)

const detectionPrompt = `Analyze this image and identify all visible food items.

For each food item you can clearly identify, provide:
- name: specific food name (e.g., "whole milk", "chicken breast", "romaine lettuce")
- category: one of these categories ONLY (use exact capitalization):
  - Fruits (apples, bananas, oranges, berries, etc.)
  - Vegetables (lettuce, tomatoes, carrots, onions, etc.)
  - Dairy (milk, cheese, yogurt, butter, eggs, etc.)
  - Meat (beef, pork, chicken, turkey, lamb, etc.)
  - Fish (salmon, tuna, cod, shrimp, seafood, etc.)
  - Grains (pasta, rice, bread, cereals, oats, gnocchi, noodles, flour, etc.)
  - Snacks (chips, cookies, crackers, candy, etc.)
  - Beverages (juice, soda, water, coffee, tea, etc.)
  - Frozen (ice cream, frozen meals, frozen vegetables, etc.)
  - Condiments (ketchup, mustard, mayo, sauces, spices, etc.)
  - Other (anything that doesn't fit above)

Rules:
- Only include food items you can clearly identify
- Be specific with names (e.g., "cheddar cheese" not just "cheese")
- Use the EXACT category names shown above (capitalized)
- If you cannot determine the category, use "Other"
- Do not include non-food items

Return a JSON object with this exact structure:
{"items": [{"name": "item name", "category": "Category"}]}

If no food items are visible, return: {"items": []}`

type (
	DetectedFoodItem struct {
		Name     string `json:"name"`
		Category string `json:"category,omitempty"`
	}

	// VisionClient detects food items in a photo. An empty slice with a
	// nil error means the image genuinely shows no food.
	VisionClient interface {
		DetectFoodItems(ctx context.Context, imageBytes []byte) ([]DetectedFoodItem, error)
	}

	visionClient struct {
		chat  openai.ChatCompleter
		model string
	}
)

func NewVisionClient(chat openai.ChatCompleter, model string) VisionClient {
	return &visionClient{chat: chat, model: model}
}

func (c *visionClient) DetectFoodItems(ctx context.Context, imageBytes []byte) ([]DetectedFoodItem, error) {
	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	imageType := detectImageType(imageBytes)

	content, err := c.chat.CreateChatCompletion(ctx, openai.ChatRequest{
		Model: c.model,
		Messages: []openai.Message{
			{
				Role: "user",
				Content: []interface{}{
					openai.TextPart{Type: "text", Text: detectionPrompt},
					openai.ImageURLPart{
						Type: "image_url",
						ImageURL: openai.ImageURL{
							URL: fmt.Sprintf("data:image/%s;base64,%s", imageType, encoded),
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
		MaxTokens:      1000,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []DetectedFoodItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}

	items := make([]DetectedFoodItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// detectImageType sniffs the format from magic bytes, defaulting to jpeg.
func detectImageType(imageBytes []byte) string {
	switch {
	case len(imageBytes) >= 3 && bytes.Equal(imageBytes[:3], []byte{0xff, 0xd8, 0xff}):
		return "jpeg"
	case len(imageBytes) >= 8 && bytes.Equal(imageBytes[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(imageBytes) >= 6 && (bytes.Equal(imageBytes[:6], []byte("GIF87a")) || bytes.Equal(imageBytes[:6], []byte("GIF89a"))):
		return "gif"
	case len(imageBytes) >= 12 && bytes.Equal(imageBytes[:4], []byte("RIFF")) && bytes.Equal(imageBytes[8:12], []byte("WEBP")):
		return "webp"
	default:
		return "jpeg"
	}
}
