package provider

import (
	"encoding/json"
	"strings"

	"traychat/model"
)

// OpenAI and OpenRouter (keyed and free) share the chat-completions wire
// shape; the request builder and response parser here serve all three.

type chatCompletionsRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string for history turns, []contentPart for the new turn
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

// chatCompletionsBody maps history to plain role/content pairs and appends
// the new user turn as content blocks: one text block plus one image_url
// block per encoded image.
func chatCompletionsBody(modelID string, history []model.Message, text string, images []model.ImageAttachment) chatCompletionsRequest {
	messages := make([]chatMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	parts := []contentPart{{Type: "text", Text: text}}
	for _, img := range images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURLPart{URL: img.DataURL},
		})
	}
	messages = append(messages, chatMessage{Role: model.RoleUser, Content: parts})

	return chatCompletionsRequest{Model: modelID, Messages: messages}
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content replyContent `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// replyContent decodes a message content field that may be a plain string or
// a list of content parts. An unrecognized shape decodes to empty rather than
// erroring, so one odd field never fails the whole response.
type replyContent struct {
	text string
}

func (r *replyContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.text = s
		return nil
	}

	var parts []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &parts); err == nil {
		var texts []string
		for _, p := range parts {
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		r.text = strings.Join(texts, "\n")
	}

	return nil
}

// parseChatCompletions extracts the first choice's reply text, degrading to
// the sentinel when the body is not a recognizable completion.
func parseChatCompletions(body []byte) string {
	var resp chatCompletionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.NoResponse
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content.text == "" {
		return model.NoResponse
	}
	return resp.Choices[0].Message.Content.text
}

// chatModelsResponse is the GET /models shape shared by OpenAI and
// OpenRouter. Pricing fields only appear on OpenRouter.
type chatModelsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Pricing struct {
			Prompt     string `json:"prompt"`
			Completion string `json:"completion"`
		} `json:"pricing"`
	} `json:"data"`
}
