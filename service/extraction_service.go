package service

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/invoice"
	"github.com/Aashish23092/supplier-doc-extractor/utils/packinglist"
	"github.com/Aashish23092/supplier-doc-extractor/utils/policy"
	"github.com/Aashish23092/supplier-doc-extractor/utils/tables"
)

const (
	SourcePDFText  = "pdf_text"
	SourcePDFOCR   = "pdf_ocr"
	SourceImageOCR = "image_ocr"
)

// PageOCR recognises one page image. The tesseract client satisfies it.
type PageOCR interface {
	ExtractPage(filePath string, pageNumber int) (dto.Page, float64, error)
}

type ExtractionService struct {
	pdfProcessor         PDFProcessor
	ocr                  PageOCR
	policy               *policy.Compiled
	scannedTextThreshold int
}

func NewExtractionService(
	pdfProcessor PDFProcessor,
	ocr PageOCR,
	p *policy.Compiled,
	scannedTextThreshold int,
) *ExtractionService {
	return &ExtractionService{
		pdfProcessor:         pdfProcessor,
		ocr:                  ocr,
		policy:               p,
		scannedTextThreshold: scannedTextThreshold,
	}
}

// ExtractDocuments processes every document independently and concurrently.
// Per-document tables keep upload order, and the combined tables concatenate
// them in that order. A document that cannot be decoded is reported in its
// own result and does not stop the others.
func (s *ExtractionService) ExtractDocuments(ctx context.Context, docs []dto.DocumentInput) (*dto.ExtractionResponse, error) {
	if len(docs) == 0 {
		return nil, dto.ErrNoFiles
	}

	extractionID := uuid.NewString()
	log.Printf("[%s] Extracting %d documents", extractionID, len(docs))

	results := make([]dto.DocumentResult, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc dto.DocumentInput) {
			defer wg.Done()
			results[i] = s.ProcessDocument(ctx, doc)
		}(i, doc)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction %s cancelled: %w", extractionID, err)
	}

	var invoiceTable tables.InvoiceTable
	var packingTable tables.PackingTable
	for _, r := range results {
		invoiceTable.Append(r.InvoiceLines...)
		packingTable.Append(r.PackingItems...)
	}

	log.Printf("[%s] Extraction done: %d invoice lines, %d packing items",
		extractionID, invoiceTable.Len(), packingTable.Len())

	return &dto.ExtractionResponse{
		ExtractionID:  extractionID,
		Documents:     results,
		InvoiceLines:  invoiceTable.Rows(),
		PackingItems:  packingTable.Rows(),
		InvoiceCount:  invoiceTable.Len(),
		PackingCount:  packingTable.Len(),
		TotalQuantity: packingTable.TotalQuantity(),
		ProcessedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// ProcessDocument decodes one document and runs both pipelines over it.
func (s *ExtractionService) ProcessDocument(ctx context.Context, doc dto.DocumentInput) dto.DocumentResult {
	result := dto.DocumentResult{
		Filename:     doc.Filename,
		InvoiceLines: []dto.InvoiceLineRecord{},
		PackingItems: []dto.PackingItemRecord{},
	}

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	pages, source, issues, err := s.decode(doc)
	result.Source = source
	result.Issues = issues
	if err != nil {
		log.Printf("Failed to decode %s: %v", doc.Filename, err)
		result.Error = err.Error()
		return result
	}
	result.Pages = len(pages)

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}

	var invoiceTable tables.InvoiceTable
	invoiceTable.Append(invoice.Parse(texts, s.policy)...)

	var packingTable tables.PackingTable
	packingTable.Append(packinglist.Parse(pages, s.policy)...)

	result.InvoiceLines = invoiceTable.Rows()
	result.PackingItems = packingTable.Rows()
	result.InvoiceCount = invoiceTable.Len()
	result.PackingCount = packingTable.Len()
	result.TotalQuantity = packingTable.TotalQuantity()

	if result.InvoiceCount == 0 && result.PackingCount == 0 {
		result.Issues = append(result.Issues, "no_records_matched")
	}

	log.Printf("Processed %s (%s, %d pages): %d invoice lines, %d packing items",
		doc.Filename, source, len(pages), result.InvoiceCount, result.PackingCount)

	return result
}

func (s *ExtractionService) decode(doc dto.DocumentInput) ([]dto.Page, string, []string, error) {
	var issues []string

	switch dto.DetectFileKind(doc.Filename) {
	case dto.FileKindPDF:
		pages, err := s.pdfProcessor.ExtractPages(doc.Data, doc.Password)
		if err != nil {
			log.Printf("PDF text extraction failed for %s: %v", doc.Filename, err)
			issues = append(issues, "pdf_text_extraction_failed")
		}
		if err == nil && textLength(pages) >= s.scannedTextThreshold {
			return pages, SourcePDFText, issues, nil
		}

		log.Printf("PDF %s seems to be scanned or has minimal text, attempting image-based OCR", doc.Filename)
		ocrPages, ocrErr := s.ocrPDF(doc)
		if ocrErr != nil {
			issues = append(issues, "scanned_pdf_ocr_failed")
			if err == nil {
				// keep the little text there was rather than nothing
				return pages, SourcePDFText, issues, nil
			}
			return nil, SourcePDFOCR, issues, ocrErr
		}
		return ocrPages, SourcePDFOCR, issues, nil

	case dto.FileKindImage:
		page, err := s.ocrImageData(doc.Data, filepath.Ext(doc.Filename), 1)
		if err != nil {
			return nil, SourceImageOCR, append(issues, "image_ocr_failed"), err
		}
		return []dto.Page{page}, SourceImageOCR, issues, nil
	}

	return nil, "", issues, fmt.Errorf("%w: %s", dto.ErrUnsupportedFileType, doc.Filename)
}

func (s *ExtractionService) ocrPDF(doc dto.DocumentInput) ([]dto.Page, error) {
	if s.ocr == nil {
		return nil, fmt.Errorf("ocr is not configured")
	}

	images, err := s.pdfProcessor.ExtractImages(doc.Data, doc.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images found in PDF")
	}

	var pages []dto.Page
	for idx, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		page, conf, err := s.ocr.ExtractPage(tempImgFile, idx+1)
		os.Remove(tempImgFile)
		if err != nil {
			log.Printf("OCR failed for page %d of %s: %v", idx+1, doc.Filename, err)
			continue
		}
		log.Printf("OCR page %d of %s: confidence %.1f", idx+1, doc.Filename, conf)
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("OCR failed for every page")
	}
	return pages, nil
}

func (s *ExtractionService) ocrImageData(data []byte, ext string, pageNumber int) (dto.Page, error) {
	if s.ocr == nil {
		return dto.Page{}, fmt.Errorf("ocr is not configured")
	}

	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return dto.Page{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return dto.Page{}, fmt.Errorf("failed to write image data: %w", err)
	}
	tempFile.Close()

	page, _, err := s.ocr.ExtractPage(tempFile.Name(), pageNumber)
	if err != nil {
		return dto.Page{}, fmt.Errorf("image OCR failed: %w", err)
	}
	return page, nil
}

func textLength(pages []dto.Page) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p.Text))
	}
	return n
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
