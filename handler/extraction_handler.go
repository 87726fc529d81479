package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExtractionHandler struct {
	extractionService *service.ExtractionService
	exportService     *service.ExportService
	maxFileSize       int64
}

func NewExtractionHandler(
	extractionService *service.ExtractionService,
	exportService *service.ExportService,
	maxFileSize int64,
) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		exportService:     exportService,
		maxFileSize:       maxFileSize,
	}
}

// Extract handles the POST /extract endpoint
func (h *ExtractionHandler) Extract(c *gin.Context) {
	log.Println("Received extraction request")

	resp, ok := h.extract(c)
	if !ok {
		return
	}

	log.Printf("Extraction %s completed successfully", resp.ExtractionID)
	c.JSON(http.StatusOK, resp)
}

// ExtractXLSX handles the POST /extract/xlsx endpoint
func (h *ExtractionHandler) ExtractXLSX(c *gin.Context) {
	log.Println("Received spreadsheet extraction request")

	resp, ok := h.extract(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportXLSX(resp)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to build spreadsheet", err)
		return
	}

	filename := fmt.Sprintf("extraction_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// extract parses the upload and runs the extraction. It writes the error
// response itself and reports false when the request cannot continue.
func (h *ExtractionHandler) extract(c *gin.Context) (*dto.ExtractionResponse, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return nil, false
	}

	request := &dto.ExtractionRequest{
		Files:    form.File["files[]"],
		Password: c.PostForm("password"),
	}

	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return nil, false
	}

	log.Printf("Processing %d files", len(request.Files))

	docs := make([]dto.DocumentInput, 0, len(request.Files))
	for _, file := range request.Files {
		reader, err := file.Open()
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
			return nil, false
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to read file data", err)
			return nil, false
		}

		docs = append(docs, dto.DocumentInput{
			Filename: file.Filename,
			Data:     data,
			Password: request.Password,
		})
	}

	resp, err := h.extractionService.ExtractDocuments(c.Request.Context(), docs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dto.ErrNoFiles) {
			status = http.StatusBadRequest
		}
		h.sendError(c, status, "Failed to extract documents", err)
		return nil, false
	}
	return resp, true
}

// sendError sends a structured error response
func (h *ExtractionHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
