package chat

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"learnify/config"

	"github.com/go-resty/resty/v2"
)

const systemPrompt = "You are the Learnify study assistant. Help students with " +
	"mathematics, science, programming and the Learnify platform. Keep answers short."

// LLMReply asks the configured OpenAI-compatible endpoint for a reply.
// Returns an error when the LLM is disabled or the call fails; callers
// fall back to the rule table.
func LLMReply(message string) (string, error) {
	if config.AppConfig.OpenAIApiKey == "" {
		return "", errors.New("llm disabled")
	}

	client := resty.New().SetTimeout(20 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.OpenAIApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": config.AppConfig.OpenAIModel,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": message},
			},
			"temperature": config.AppConfig.OpenAITemperature,
			"max_tokens":  config.AppConfig.OpenAIMaxTokens,
		}).
		Post(config.AppConfig.OpenAIApiURL)
	if err != nil {
		log.Printf("LLM request failed: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("LLM request returned %d: %s", resp.StatusCode(), resp.String())
		return "", errors.New("llm request failed")
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("empty llm response")
	}

	return completion.Choices[0].Message.Content, nil
}
