package llm

import (
	"regexp"
	"strings"
)

// ModelCost is a model's list price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost converts token counts into a USD estimate at list price.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns list pricing for a model ID, nil for models the
// table does not know. Dated releases fall back to their base ID, so
// "claude-haiku-4-5-20251001" prices as "claude-haiku-4-5". Callers
// surface unknown models rather than guessing.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	if base := baseModelID(modelID); base != modelID {
		if c, ok := modelCosts[base]; ok {
			return &c
		}
	}
	return nil
}

var datedRelease = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2})$`)

// baseModelID strips release suffixes: Anthropic date tags like
// -20250514, OpenAI dates like -2024-08-06, and -latest pointers.
func baseModelID(id string) string {
	id = strings.TrimSuffix(id, "-latest")
	if m := datedRelease.FindStringIndex(id); m != nil {
		id = id[:m[0]]
	}
	return id
}

// modelCosts holds base model IDs; dated variants resolve through
// baseModelID unless priced differently, in which case they get an
// explicit entry. Prices from models.dev, last refreshed 2026-08-10.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-haiku":    {0.25, 1.25},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-0": {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-3-opus":     {15, 75},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-0":   {15, 75},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-6":   {5, 25},

	// OpenAI
	"gpt-3.5-turbo":     {0.5, 1.5},
	"gpt-4":             {30, 60},
	"gpt-4-turbo":       {10, 30},
	"gpt-4.1":           {2, 8},
	"gpt-4.1-mini":      {0.4, 1.6},
	"gpt-4.1-nano":      {0.1, 0.4},
	"gpt-4o":            {2.5, 10},
	"gpt-4o-2024-05-13": {5, 15}, // launch revision, priced above current gpt-4o
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-5":             {1.25, 10},
	"gpt-5-chat-latest": {1.25, 10},
	"gpt-5-mini":        {0.25, 2},
	"gpt-5-nano":        {0.05, 0.4},
	"gpt-5-pro":         {15, 120},
	"gpt-5.1":           {1.25, 10},
	"gpt-5.2":           {1.75, 14},
	"o1":                {15, 60},
	"o1-mini":           {1.1, 4.4},
	"o3":                {2, 8},
	"o3-mini":           {1.1, 4.4},
	"o4-mini":           {1.1, 4.4},

	// Google
	"gemini-1.5-flash":         {0.075, 0.3},
	"gemini-1.5-flash-8b":      {0.0375, 0.15},
	"gemini-1.5-pro":           {1.25, 5},
	"gemini-2.0-flash":         {0.1, 0.4},
	"gemini-2.0-flash-lite":    {0.075, 0.3},
	"gemini-2.5-flash":         {0.3, 2.5},
	"gemini-2.5-flash-lite":    {0.1, 0.4},
	"gemini-2.5-pro":           {1.25, 10},
	"gemini-3-flash-preview":   {0.5, 3},
	"gemini-3-pro-preview":     {2, 12},
	"gemini-flash-latest":      {0.3, 2.5},
	"gemini-flash-lite-latest": {0.1, 0.4},
}
