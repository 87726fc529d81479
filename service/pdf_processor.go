package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
	"github.com/Aashish23092/supplier-doc-extractor/utils/layout"
)

type PDFProcessor interface {
	ExtractPages(pdfData []byte, password string) ([]dto.Page, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct {
	rowTolerance float64
}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{rowTolerance: 3}
}

// ExtractPages decodes every page into plain text and positioned word tokens.
// Token tops are measured from the top edge of the page.
func (p *pdfProcessor) ExtractPages(pdfData []byte, password string) (pages []dto.Page, err error) {
	data, err := decrypt(pdfData, password)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	// the content stream interpreter panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("failed to read pdf content: %v", rec)
		}
	}()

	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		words := mergeGlyphs(page.Content().Text)
		height := pageHeight(page.V)

		tokens := make([]dto.Token, 0, len(words))
		for _, w := range words {
			tokens = append(tokens, dto.Token{
				Text: norm.NFKC.String(w.S),
				X0:   w.X,
				X1:   w.X + w.W,
				Top:  height - w.Y,
				Page: pageIndex,
			})
		}

		pages = append(pages, dto.Page{
			Number: pageIndex,
			Text:   p.pageText(tokens),
			Tokens: tokens,
		})
	}
	return pages, nil
}

// pageText lays the tokens out as newline-delimited lines, one per visual row.
func (p *pdfProcessor) pageText(tokens []dto.Token) string {
	var b strings.Builder
	for _, row := range layout.GroupRows(tokens, p.rowTolerance, 1) {
		b.WriteString(row.Text())
		b.WriteString("\n")
	}
	return b.String()
}

// mergeGlyphs joins the glyph runs of a page into words. Runs on the same
// baseline are merged while the gap between them is small relative to the
// font size; whitespace ends a word.
func mergeGlyphs(chars []pdf.Text) []pdf.Text {
	sorted := make([]pdf.Text, 0, len(chars))
	for _, c := range chars {
		if c.S == "" {
			continue
		}
		sorted = append(sorted, c)
	}

	// Snap nearly equal baselines so sorting keeps a line's glyphs together
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Y != sorted[i-1].Y && math.Abs(sorted[i].Y-sorted[i-1].Y) < 0.5 {
			sorted[i].Y = sorted[i-1].Y
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var words []pdf.Text
	var cur *pdf.Text
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.S) != "" {
			words = append(words, *cur)
		}
		cur = nil
	}

	for _, c := range sorted {
		if strings.TrimSpace(c.S) == "" {
			flush()
			continue
		}
		if cur != nil && c.Y == cur.Y {
			end := cur.X + cur.W
			gap := c.X - end
			if gap <= math.Max(c.FontSize, cur.FontSize)*0.2 {
				cur.S += c.S
				cur.W = c.X + c.W - cur.X
				continue
			}
		}
		flush()
		w := c
		w.S = strings.TrimSpace(w.S)
		cur = &w
	}
	flush()

	return words
}

// pageHeight reads the MediaBox height, following the Parent chain since the
// box may be inherited.
func pageHeight(v pdf.Value) float64 {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(3).Float64() - box.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	// US Letter
	return 792
}

// decrypt removes password protection with pdfcpu. Without a password the
// data is returned unchanged.
func decrypt(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not encrypted") {
			log.Println("Password supplied for an unencrypted PDF, ignoring it")
			return pdfData, nil
		}
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	// Create a temporary directory for extraction
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	// nil selects every page
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
