package ai

import (
	"fmt"
	"math/rand"
)

// Content longer than this is cut before it is sent for a reflection prompt.
const promptContentLimit = 2000

func reflectionPrompt(content string) string {
	if r := []rune(content); len(r) > promptContentLimit {
		content = string(r[:promptContentLimit])
	}

	return fmt.Sprintf("Based on this journal entry, suggest a thoughtful reflection question. Reply with the question only: %s", content)
}

func analysisPrompt(content string) string {
	return fmt.Sprintf(`Analyze this journal entry and extract structured information.
Journal Entry:
"%s"

Extract and return ONLY a valid JSON object with this exact structure:
{
  "mood_score": <number from -5 (very negative) to 5 (very positive)>,
  "topics": [<array of key topics/themes mentioned>],
  "people": [<array of people's names mentioned>],
  "places": [<array of locations mentioned>]
}

Rules:
- mood_score must be an integer between -5 and 5
- Return empty arrays if nothing found
- Only return the JSON object, no other text`, content)
}

func companionPrompt(userName string) string {
	if userName == "" {
		userName = "Friend"
	}

	return fmt.Sprintf(`You are a warm, empathetic journaling companion for %s.
Your role:
- Ask thoughtful follow-up questions about their day
- Be encouraging and supportive
- Keep responses conversational and concise (2-3 sentences max)
- Help them reflect on their experiences

Tone: Friendly, casual, like talking to a supportive friend.`, userName)
}

var fallbackPrompts = []string{
	"What is one thing that made you smile today?",
	"What is something you are looking forward to this week?",
	"Describe a challenge you faced recently and how you handled it.",
	"What are three things you are grateful for right now?",
	"What would you tell yourself from a year ago?",
	"Which conversation stayed with you today, and why?",
	"What drained your energy today, and what restored it?",
	"What is a small win you have not given yourself credit for?",
}

// RandomPrompt picks a built-in prompt for when the completion API is unavailable.
func RandomPrompt(rnd *rand.Rand) string {
	if rnd == nil {
		return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
	}
	return fallbackPrompts[rnd.Intn(len(fallbackPrompts))]
}
