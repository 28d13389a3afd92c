package exam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

const defaultModel = openai.ChatModelGPT4oMini

var examSchema = generateSchema[Exam]()

const examInstructions = `You write reading-comprehension exams. Given an article, produce ` +
	`multiple-choice questions that test understanding of its content. Each question has ` +
	`exactly 4 options and exactly one correct answer. Questions must be answerable from ` +
	`the article alone.`

// Generator produces exams from article text via the OpenAI API.
type Generator struct {
	client      *openai.Client
	model       string
	maxAttempts int
}

func NewGenerator(client *openai.Client, model string) *Generator {
	if model == "" {
		model = defaultModel
	}
	return &Generator{client: client, model: model, maxAttempts: 3}
}

// Generate requests an exam with questionCount questions covering the given
// article. A malformed response is retried up to the generator's attempt
// limit before the last validation error is returned.
func (g *Generator) Generate(ctx context.Context, title, text string, questionCount int) (Exam, error) {
	if g.client == nil {
		return Exam{}, errors.New("exam: client is nil")
	}
	if questionCount <= 0 {
		return Exam{}, fmt.Errorf("exam: question count %d must be positive", questionCount)
	}
	if strings.TrimSpace(text) == "" {
		return Exam{}, errors.New("exam: article text is empty")
	}

	input := buildPrompt(title, text, questionCount)
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ComprehensionExam",
			Schema:      examSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Multiple-choice comprehension exam JSON"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(2000),
		Instructions:    openai.String(examInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	var lastErr error
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		resp, err := callWithRetry(ctx, g.client, params)
		if err != nil {
			return Exam{}, err
		}
		var ex Exam
		if err := decodeModelJSON(resp.OutputText(), &ex); err != nil {
			lastErr = fmt.Errorf("unmarshal exam: %w", err)
			continue
		}
		if err := Validate(ex, questionCount); err != nil {
			lastErr = err
			continue
		}
		return ex, nil
	}
	return Exam{}, fmt.Errorf("exam: no valid exam after %d attempts: %w", g.maxAttempts, lastErr)
}

const maxArticleChars = 24_000

func buildPrompt(title, text string, questionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d multiple-choice questions about the following article.\n\n", questionCount)
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", strings.TrimSpace(title))
	}
	body := strings.TrimSpace(text)
	if len(body) > maxArticleChars {
		body = body[:maxArticleChars] + "…"
	}
	b.WriteString(body)
	return b.String()
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{30 * time.Second, 65 * time.Second, 100 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 15 * time.Second, 30 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					time.Sleep(rateLimitWaitTimes[attempt])
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					time.Sleep(serverErrorWaitTimes[attempt])
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}

func decodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}
	// Some models wrap the JSON in prose. Extract the outermost object.
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}
	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	m, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	ensureOpenAICompliance(m)
	return m
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ensureOpenAICompliance rewrites the schema in place to satisfy the strict
// structured-output rules: every object closes additionalProperties and
// requires all of its properties.
func ensureOpenAICompliance(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false
		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			var required []string
			for name := range properties {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema[requiredKey] = required
			}
		}
	}
	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureOpenAICompliance(propMap)
			}
		}
	}
	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureOpenAICompliance(items)
	}
	if additional, ok := schema[additionalPropertiesKey].(map[string]interface{}); ok {
		ensureOpenAICompliance(additional)
	}
}
