package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// systemPrompt define el rol del modelo y el formato de salida. Con
	// response_mime_type=application/json Gemini devuelve JSON puro, sin
	// bloques de markdown que limpiar.
	systemPrompt = `Sos el asistente de carga del taller de una empresa de transporte de Argentina.
Recibís un parte de novedades en texto libre (o la foto de un remito o pedido manuscrito) y devolvés
ÚNICAMENTE un array JSON (sin texto adicional), donde cada elemento es una orden de trabajo sugerida:
[
  {
    "descripcion": "<qué hay que hacer, en español, corto>",
    "repuesto": "<nombre del repuesto si se menciona, o vacío>",
    "cantidad": <número entero, 0 si no se menciona>,
    "movil": "<nombre o número del móvil si se menciona, o vacío>"
  }
]

Reglas:
- Un elemento por cada trabajo distinto que se describa.
- No inventes repuestos ni móviles que el texto no mencione.
- Si no hay ningún trabajo identificable, devolvé [].`
)

// GeminiService adaptador que implementa LLMService llamando a la API REST de
// Google Gemini. Usa únicamente net/http para no añadir dependencias externas.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Con apiKey vacío las llamadas fallan con error claro y el caller degrada a
// la carga manual.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inline_data,omitempty"`
}

type geminiBlobPart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// suggestionPayload es el elemento del array JSON que esperamos del modelo.
type suggestionPayload struct {
	Description string `json:"descripcion"`
	Part        string `json:"repuesto"`
	Quantity    int64  `json:"cantidad"`
	Vehicle     string `json:"movil"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnalyzeText interpreta un parte de novedades en texto libre.
func (s *GeminiService) AnalyzeText(ctx context.Context, text string) ([]dto.SuggestedOrderDTO, error) {
	userContent := geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: "Parte de novedades:\n" + text}},
	}
	return s.generate(ctx, userContent)
}

// AnalyzeImage interpreta la foto de un remito o pedido manuscrito.
func (s *GeminiService) AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]dto.SuggestedOrderDTO, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	userContent := geminiContent{
		Role: "user",
		Parts: []geminiPart{
			{Text: "Interpretá este remito o pedido manuscrito:"},
			{InlineData: &geminiBlobPart{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			}},
		},
	}
	return s.generate(ctx, userContent)
}

func (s *GeminiService) generate(ctx context.Context, userContent geminiContent) ([]dto.SuggestedOrderDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{userContent},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	rawJSON := stripFences(gemResp.Candidates[0].Content.Parts[0].Text)

	var payloadOut []suggestionPayload
	if err := json.Unmarshal([]byte(rawJSON), &payloadOut); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, rawJSON)
	}

	out := make([]dto.SuggestedOrderDTO, 0, len(payloadOut))
	for _, p := range payloadOut {
		if strings.TrimSpace(p.Description) == "" {
			continue
		}
		if p.Quantity < 0 {
			p.Quantity = 0
		}
		out = append(out, dto.SuggestedOrderDTO{
			Description: strings.TrimSpace(p.Description),
			Part:        strings.TrimSpace(p.Part),
			Quantity:    p.Quantity,
			Vehicle:     strings.TrimSpace(p.Vehicle),
		})
	}
	return out, nil
}

// stripFences quita el bloque markdown si el modelo ignoró el MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
