package feedback_ai_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"goforms/internal/services"
)

var Module = fx.Provide(provideFeedbackService)

// Prefers OpenAI when configured, falls back to Gemini's free tier, and wires
// a disabled provider otherwise so preview requests still render without AI
// feedback.
func provideFeedbackService() services.AIFeedbackServiceInterface {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return services.NewOpenAIFeedbackService(key)
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		svc, err := services.NewGeminiFeedbackService(key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("Gemini feedback provider unavailable: %v", err)
			return services.NewNoFeedbackService()
		}
		return svc
	}
	log.Println("No AI feedback provider configured")
	return services.NewNoFeedbackService()
}
