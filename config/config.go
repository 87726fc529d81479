package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort           string
	TesseractDataPath    string
	TesseractLanguage    string
	MaxFileSize          int64
	MaxMultipartMemory   int64
	PolicyFile           string
	ScannedTextThreshold int
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	language := os.Getenv("TESSERACT_LANGUAGE")
	if language == "" {
		language = "eng+deu"
	}

	return &Config{
		ServerPort:         serverPort,
		TesseractDataPath:  tesseractDataPath,
		TesseractLanguage:  language,
		MaxFileSize:        getEnvAsInt64("MAX_FILE_SIZE", 20*1024*1024), // 20 MB
		MaxMultipartMemory: getEnvAsInt64("MAX_MULTIPART_MEMORY", 32<<20),
		PolicyFile:         os.Getenv("EXTRACTION_POLICY_FILE"),
		// PDFs with less embedded text than this are treated as scanned
		ScannedTextThreshold: int(getEnvAsInt64("SCANNED_TEXT_THRESHOLD", 20)),
	}
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}
