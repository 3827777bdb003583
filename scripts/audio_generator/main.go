// Batch-generates pronunciation audio for dictionary words that have no
// recording yet. Run from the repo root: go run ./scripts/audio_generator
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/joho/godotenv"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"deepeng_backend/internal/model"
)

const (
	outputDir  = "pronounce/dictionary"
	maxWorkers = 10
	// keep well under the API's per-minute quota
	perRequestPause = 700 * time.Millisecond
)

func main() {
	log.Println("Starting pronunciation audio generator...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on exported variables")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to create TTS client: %v", err)
	}
	defer client.Close()

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create %s: %v", outputDir, err)
	}

	var entries []model.DictionaryEntry
	if err := db.Where("audio_url IS NULL OR audio_url = ''").Find(&entries).Error; err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	if len(entries) == 0 {
		log.Println("Every word already has audio. Done.")
		return
	}
	log.Printf("Found %d words to synthesize", len(entries))

	jobs := make(chan model.DictionaryEntry, len(entries))
	var wg sync.WaitGroup
	var mu sync.Mutex
	processed := 0

	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				path := filepath.Join(outputDir, entry.Word+".mp3")
				if err := synthesizeAndSave(ctx, client, entry.Word, path); err != nil {
					log.Printf("Failed to synthesize %q: %v", entry.Word, err)
					continue
				}

				url := "/pronounce/dictionary/" + entry.Word + ".mp3"
				if err := db.Model(&model.DictionaryEntry{}).
					Where("word = ?", entry.Word).
					Update("audio_url", url).Error; err != nil {
					log.Printf("Failed to update %q: %v", entry.Word, err)
					continue
				}

				mu.Lock()
				processed++
				mu.Unlock()

				time.Sleep(perRequestPause)
			}
		}()
	}

	for _, e := range entries {
		jobs <- e
	}
	close(jobs)
	wg.Wait()

	log.Printf("Done. Synthesized %d of %d words", processed, len(entries))
}

func synthesizeAndSave(ctx context.Context, client *texttospeech.Client, text, outputPath string) error {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
			Name:         "en-US-Standard-F",
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("SynthesizeSpeech: %w", err)
	}

	if err := os.WriteFile(outputPath, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}
