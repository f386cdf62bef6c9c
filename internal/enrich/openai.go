package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmelton/jobdigest/internal/model"
	"github.com/dmelton/jobdigest/internal/ratelimit"
)

// OpenAIProvider calls the OpenAI /v1/responses endpoint.
type OpenAIProvider struct {
	baseURL       string
	apiKey        string
	modelName     string
	vectorStoreID string
	httpClient    *http.Client
	limiter       *ratelimit.Limiter
}

var _ LLMProvider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider targeting the OpenAI API.
// vectorStoreID names the pre-populated resume corpus used by
// CompleteWithCorpus.
func NewOpenAIProvider(baseURL, apiKey, modelName, vectorStoreID string, httpClient *http.Client, limiter *ratelimit.Limiter) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL:       baseURL,
		apiKey:        apiKey,
		modelName:     modelName,
		vectorStoreID: vectorStoreID,
		httpClient:    httpClient,
		limiter:       limiter,
	}
}

// responsesRequest mirrors the OpenAI /v1/responses request body.
type responsesRequest struct {
	Model        string         `json:"model"`
	Instructions string         `json:"instructions"`
	Input        string         `json:"input"`
	Tools        []responseTool `json:"tools,omitempty"`
}

type responseTool struct {
	Type           string   `json:"type"`
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// responsesResponse mirrors the relevant fields of the OpenAI response.
type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the instructions and input to OpenAI and returns the output
// text. The model is instructed to answer in JSON but nothing enforces that;
// callers must tolerate free text.
func (p *OpenAIProvider) Complete(ctx context.Context, instructions, input string) (string, error) {
	return p.send(ctx, responsesRequest{
		Model:        p.modelName,
		Instructions: instructions,
		Input:        input,
	})
}

// CompleteWithCorpus is Complete with a file_search tool over the resume
// corpus attached.
func (p *OpenAIProvider) CompleteWithCorpus(ctx context.Context, instructions, input string) (string, error) {
	return p.send(ctx, responsesRequest{
		Model:        p.modelName,
		Instructions: instructions,
		Input:        input,
		Tools: []responseTool{{
			Type:           "file_search",
			VectorStoreIDs: []string{p.vectorStoreID},
		}},
	})
}

func (p *OpenAIProvider) send(ctx context.Context, reqBody responsesRequest) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, "openai"); err != nil {
			return "", err
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := p.baseURL + "/responses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBytes)),
			Err:        fmt.Errorf("llm request failed"),
		}
	}

	var rr responsesResponse
	if err := json.Unmarshal(respBytes, &rr); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}

	if rr.Error != nil {
		return "", fmt.Errorf("llm error (%s): %s", rr.Error.Type, rr.Error.Message)
	}

	// The output array interleaves tool activity (e.g. file_search calls)
	// with message items; the answer text lives on the message items.
	for _, out := range rr.Output {
		if out.Type != "" && out.Type != "message" {
			continue
		}
		for _, c := range out.Content {
			if c.Type == "output_text" || c.Type == "" {
				return c.Text, nil
			}
		}
	}

	return "", fmt.Errorf("llm returned no output text")
}
