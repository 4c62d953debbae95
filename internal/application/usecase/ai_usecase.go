package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/ports"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// AIUseCase orquesta la pre-carga asistida de OTs. La IA solo sugiere:
// nada de lo que devuelve se persiste hasta que el operador confirma el
// formulario, y cualquier falla degrada a la carga manual.
type AIUseCase struct {
	llm ports.LLMService
	log *logger.Logger
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, log *logger.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, log: log}
}

// AnalyzeText interpreta un parte de novedades en texto libre. Timeout de
// 10 s: las llamadas a LLMs pueden demorar varios segundos y no deben
// bloquear los goroutines del servidor.
func (uc *AIUseCase) AnalyzeText(ctx context.Context, in dto.AnalyzeTextRequest) ([]dto.SuggestedOrderDTO, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	suggestions, err := uc.llm.AnalyzeText(ctx, in.Text)
	if err != nil {
		uc.log.Warn().Err(err).Msg("análisis de texto IA falló; queda la carga manual")
		return []dto.SuggestedOrderDTO{}, nil
	}
	return suggestions, nil
}

// AnalyzeImage interpreta la foto de un remito o pedido manuscrito. Timeout
// de 15 s: las imágenes tardan más que el texto.
func (uc *AIUseCase) AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]dto.SuggestedOrderDTO, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	suggestions, err := uc.llm.AnalyzeImage(ctx, image, mimeType)
	if err != nil {
		uc.log.Warn().Err(err).Msg("análisis de imagen IA falló; queda la carga manual")
		return []dto.SuggestedOrderDTO{}, nil
	}
	return suggestions, nil
}
