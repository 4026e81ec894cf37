// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini is a Model backed by the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini model using the given API key.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: missing api key")
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Complete implements Model. The instructions are sent as the system
// instruction and the input as the only user message.
func (gemini *Gemini) Complete(ctx context.Context, instructions string, input []byte) (string, error) {
	temperature := gemini.temperature

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	}

	contents := []*genai.Content{
		genai.NewContentFromText("INPUT:\n"+string(input), genai.RoleUser),
	}

	res, err := gemini.client.Models.GenerateContent(ctx, gemini.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	// An empty answer is left for the parser to reject as malformed.
	return strings.TrimSpace(res.Text()), nil
}
