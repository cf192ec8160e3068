package ai_controllers

import (
	ai_services "taskhive/internal/features/ai/services"
)

var aiController = &AIController{
	aiService: ai_services.GetAIService(),
}

func GetAIController() *AIController {
	return aiController
}
