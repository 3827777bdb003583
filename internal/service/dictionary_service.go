package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dictionaryCacheTTL = 24 * time.Hour

type DictionaryService struct {
	Entries *repository.DictionaryRepository
	Cache   *redis.Client
}

func NewDictionaryService(entries *repository.DictionaryRepository, cache *redis.Client) *DictionaryService {
	return &DictionaryService{Entries: entries, Cache: cache}
}

// Lookup resolves a word case-insensitively, reading through the Redis
// cache. A cache outage falls back to the store silently.
func (s *DictionaryService) Lookup(ctx context.Context, word string) (*model.DictionaryEntry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, util.ErrWordNotFound
	}

	key := "dict:" + word
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var entry model.DictionaryEntry
			if err := json.Unmarshal([]byte(cached), &entry); err == nil {
				return &entry, nil
			}
		}
	}

	entry, err := s.Entries.Find(word)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWordNotFound
		}
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(entry); err == nil {
			if err := s.Cache.Set(ctx, key, data, dictionaryCacheTTL).Err(); err != nil {
				zap.L().Debug("dictionary cache write failed", zap.Error(err))
			}
		}
	}
	return entry, nil
}

// Save upserts an entry and drops any stale cached copy.
func (s *DictionaryService) Save(ctx context.Context, entry *model.DictionaryEntry) error {
	entry.Word = strings.ToLower(strings.TrimSpace(entry.Word))
	if err := s.Entries.Upsert(entry); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Del(ctx, "dict:"+entry.Word)
	}
	return nil
}

func (s *DictionaryService) List() ([]model.DictionaryEntry, error) {
	return s.Entries.FindAll()
}
