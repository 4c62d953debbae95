package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// maxAttachmentBytes limita el tamaño de un adjunto de OT.
const maxAttachmentBytes = 15 << 20 // 15 MB

// DocumentHandler maneja los archivos adjuntos de OTs.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Attach godoc
// @Summary      Adjuntar archivo a una OT
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      int     true   "ID de la OT (0 = documento general)"
// @Param        archivo      formData  file    true   "Archivo a adjuntar"
// @Param        descripcion  formData  string  false  "Descripción"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/documents [post]
func (h *DocumentHandler) Attach(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}

	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "falta el campo 'archivo'"})
	}
	if fileHeader.Size > maxAttachmentBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el adjunto supera los 15 MB"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}

	doc, err := h.uc.Attach(
		c.Context(),
		int64(id),
		fileHeader.Filename,
		c.FormValue("descripcion"),
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(documentToDTO(doc))
}

// ListByOrder godoc
// @Summary      Adjuntos de una OT
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la OT"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/workorders/{id}/documents [get]
func (h *DocumentHandler) ListByOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	docs, err := h.uc.List(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToDTO(d))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        ot_id  query  int  false  "Filtrar por OT"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.uc.List(c.Context(), int64(c.QueryInt("ot_id", 0)))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToDTO(d))
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar un adjunto por su nombre guardado
// @Tags         documents
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        name  path  string  true  "Nombre guardado (DOC_...)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{name} [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	name := c.Params("name")
	path, err := h.uc.FilePath(c.Context(), name)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Download(path, name)
}
