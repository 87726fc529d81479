package main

import (
	"log"

	"github.com/Aashish23092/supplier-doc-extractor/client"
	"github.com/Aashish23092/supplier-doc-extractor/config"
	"github.com/Aashish23092/supplier-doc-extractor/handler"
	"github.com/Aashish23092/supplier-doc-extractor/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)

	extractionPolicy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Fatalf("Failed to load extraction policy: %v", err)
	}
	if cfg.PolicyFile != "" {
		log.Printf("Loaded extraction policy from %s", cfg.PolicyFile)
	}

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	extractionService := service.NewExtractionService(
		pdfProcessor,
		tesseractClient,
		extractionPolicy,
		cfg.ScannedTextThreshold,
	)
	exportService := service.NewExportService()

	// Initialize handler layer
	extractionHandler := handler.NewExtractionHandler(extractionService, exportService, cfg.MaxFileSize)

	router := handler.NewRouter(extractionHandler, cfg.MaxMultipartMemory)

	// Start server
	log.Printf("Starting Supplier Document Extractor on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
