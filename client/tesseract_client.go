package client

import (
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Aashish23092/supplier-doc-extractor/dto"
)

type TesseractClient struct {
	dataPath  string
	languages []string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	var langs []string
	for _, l := range strings.Split(language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{"eng"}
	}

	return &TesseractClient{
		dataPath:  dataPath,
		languages: langs,
	}
}

// ExtractPage runs OCR on an image file and returns it as a page: the plain
// text plus one token per recognised word, in pixel coordinates. The second
// return value is the mean word confidence.
func (tc *TesseractClient) ExtractPage(filePath string, pageNumber int) (dto.Page, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage(tc.languages...); err != nil {
		return dto.Page{}, 0, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return dto.Page{}, 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return dto.Page{}, 0, fmt.Errorf("failed to extract text: %w", err)
	}

	page := dto.Page{Number: pageNumber, Text: text}

	// Word boxes feed the packing pipeline; without them only the text is usable
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		log.Printf("Word boxes unavailable for %s: %v", filePath, err)
		return page, 0, nil
	}

	page.Tokens = tokensFromBoxes(boxes, pageNumber)

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}
	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return page, avgConf, nil
}

func tokensFromBoxes(boxes []gosseract.BoundingBox, pageNumber int) []dto.Token {
	tokens := make([]dto.Token, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		tokens = append(tokens, dto.Token{
			Text: word,
			X0:   float64(box.Box.Min.X),
			X1:   float64(box.Box.Max.X),
			Top:  float64(box.Box.Min.Y),
			Page: pageNumber,
		})
	}
	return tokens
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
