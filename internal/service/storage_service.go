package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/util"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where pronunciation audio lives.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	DeletePrefix(ctx context.Context, prefix string) error
	GetURL(filename string) string
}

// LocalStorageProvider keeps audio on disk under the configured path,
// served by the router at /pronounce.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalStorageProvider) DeletePrefix(ctx context.Context, prefix string) error {
	return os.RemoveAll(filepath.Join(p.Config.LocalPath, prefix))
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/pronounce/" + filename
}

// MinioStorageProvider stores audio in a MinIO bucket.
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) DeletePrefix(ctx context.Context, prefix string) error {
	objects := p.Client.ListObjects(ctx, p.Config.MinioBucket, minio.ListObjectsOptions{
		Prefix:    prefix + "/",
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return obj.Err
		}
		if err := p.Client.RemoveObject(ctx, p.Config.MinioBucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// StorageService handles pronunciation audio for modules. Files are laid
// out as <module-slug>/<unique-name>.mp3.
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// SaveAudio stores an uploaded audio file under the module's folder and
// returns its public URL. A uuid prefix keeps repeated uploads of the
// same filename from clobbering each other.
func (s *StorageService) SaveAudio(ctx context.Context, moduleTitle, originalName string, reader io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".mp3"
	}
	name := fmt.Sprintf("%s/%s%s", util.ModuleSlug(moduleTitle), uuid.NewString(), ext)
	return s.Provider.Upload(ctx, name, reader, size, "audio/mpeg")
}

// RemoveModuleAudio drops every audio file stored for a module.
func (s *StorageService) RemoveModuleAudio(ctx context.Context, moduleTitle string) error {
	return s.Provider.DeletePrefix(ctx, util.ModuleSlug(moduleTitle))
}

func (s *StorageService) GetURL(filename string) string {
	return s.Provider.GetURL(filename)
}
