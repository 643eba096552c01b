package ratelimit

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// AIBudget caps generative-text calls per backend and in total. Counters
// reset daily. When a budget is exhausted the analyzer degrades to its
// local heuristic instead of failing the run.
type AIBudget struct {
	mu          sync.Mutex
	geminiCount int
	openaiCount int
	totalCount  int
	maxGemini   int
	maxOpenAI   int
	maxTotal    int
	resetTime   time.Time
}

// NewAIBudget creates a budget; zero for any limit means unlimited.
func NewAIBudget(maxGemini, maxOpenAI, maxTotal int) *AIBudget {
	return &AIBudget{
		maxGemini: maxGemini,
		maxOpenAI: maxOpenAI,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUseGemini reports whether a Gemini request fits the budget.
func (rl *AIBudget) CanUseGemini() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		log.Printf("⚠️ Gemini budget reached (%d/%d)", rl.geminiCount, rl.maxGemini)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}
	return true
}

// CanUseOpenAI reports whether an OpenAI request fits the budget.
func (rl *AIBudget) CanUseOpenAI() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		log.Printf("⚠️ OpenAI budget reached (%d/%d)", rl.openaiCount, rl.maxOpenAI)
		return false
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", rl.totalCount, rl.maxTotal)
		return false
	}
	return true
}

// UseGemini consumes one Gemini request from the budget.
func (rl *AIBudget) UseGemini() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		return fmt.Errorf("gemini budget exceeded")
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("total AI budget exceeded")
	}

	rl.geminiCount++
	rl.totalCount++
	return nil
}

// UseOpenAI consumes one OpenAI request from the budget.
func (rl *AIBudget) UseOpenAI() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		return fmt.Errorf("openai budget exceeded")
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("total AI budget exceeded")
	}

	rl.openaiCount++
	rl.totalCount++
	return nil
}

// GetStats returns current usage for the metrics endpoint.
func (rl *AIBudget) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"gemini_used":  rl.geminiCount,
		"gemini_limit": rl.maxGemini,
		"openai_used":  rl.openaiCount,
		"openai_limit": rl.maxOpenAI,
		"total_used":   rl.totalCount,
		"total_limit":  rl.maxTotal,
		"reset_time":   rl.resetTime,
	}
}

func (rl *AIBudget) checkReset() {
	if time.Now().After(rl.resetTime) {
		log.Printf("🔄 Resetting AI budget counters")
		rl.geminiCount = 0
		rl.openaiCount = 0
		rl.totalCount = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
