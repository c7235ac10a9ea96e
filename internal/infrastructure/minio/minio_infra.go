package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rynok-dev/marketplace-backend/internal/cfg"
	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/internal/infrastructure"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/jitter"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

// FileRepository — хранилище файлов, поверх которого работает инфраструктура.
type FileRepository interface {
	Upload(ctx context.Context, file *domain.FileObject) (string, error)
	Delete(ctx context.Context, key string) error
}

// MinioInfrastructure управляет загрузкой и очисткой файлов в MinIO.
type MinioInfrastructure struct {
	fileRepo         FileRepository
	cfg              *cfg.MinIOCfg
	logger           logger.Logger
	shutdownCtx      context.Context
	wg               sync.WaitGroup
	uploadFilesLimit int
}

func NewMinioInfrastructure(fileRepo FileRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		fileRepo:         fileRepo,
		cfg:              cfg,
		logger:           logger,
		shutdownCtx:      shutdownCtx,
		wg:               sync.WaitGroup{},
		uploadFilesLimit: cfg.UploadImagesLimit,
	}
}

// UploadFile загружает один файл в MinIO и возвращает ключ объекта.
// Ключ строится из префикса раздела, имени файла и uuid.
func (m *MinioInfrastructure) UploadFile(ctx context.Context, req *usecase.UploadFileReq) (string, error) {
	const op = "MinioInfrastructure.UploadFile"

	fileID := uuid.NewString()
	ext, err := infrastructure.GetExtensionFromMIME(req.File.MimeType)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.File.MimeType, req.File.Name, err))
	}

	objKey := fmt.Sprintf("%s/%s-%s.%s", req.Prefix, req.File.Name, fileID, ext)
	file := domain.NewFileObject(fileID, m.cfg.BucketName, objKey, req.File.Data, &req.File.Size, &req.File.MimeType)

	key, err := m.fileRepo.Upload(ctx, file)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", req.File.Name, err))
	}

	return key, nil
}

// UploadFiles загружает файлы в MinIO параллельно с ограничением одновременных операций.
// В случае ошибки отменяет остальные загрузки и запускает очистку уже загруженных файлов.
func (m *MinioInfrastructure) UploadFiles(ctx context.Context, req *usecase.UploadFilesReq) (*usecase.UploadFilesRes, error) {
	const op = "MinioInfrastructure.UploadFiles"
	// Отмена остальных загрузок при первой ошибке
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keyCh := make(chan string, len(req.Files))
	errCh := make(chan error, len(req.Files))
	sem := make(chan struct{}, m.uploadFilesLimit)

	var uploadWg sync.WaitGroup
	for _, file := range req.Files {
		uploadWg.Add(1)
		go func() {
			defer uploadWg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key, err := m.UploadFile(ctx, usecase.NewUploadFileReq(req.Prefix, file))
			if err != nil {
				errCh <- err
				return
			}

			keyCh <- key
		}()
	}

	go func() {
		uploadWg.Wait()
		close(errCh)
		close(keyCh)
	}()

	keys := make([]string, 0, len(req.Files))
	ok := false
	defer func() {
		if !ok && len(keys) > 0 {
			m.wg.Add(1)
			go m.cleanupUploadedKeys(keys)
		}
	}()

	for completed := 0; completed < len(req.Files); {
		select {
		case key, ok := <-keyCh:
			if ok {
				keys = append(keys, key)
				completed++
			}
		case err, ok := <-errCh:
			if ok {
				cancel()
				return nil, e.Wrap(op, err)
			}
		case <-ctx.Done():
			cancel()
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	ok = true
	return usecase.NewUploadFilesRes(keys), nil
}

// CleanupFiles запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupFiles(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	// Создаём контекст с таймаутом на основе shutdownCtx
	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < 3; attempt++ {
			if err := m.fileRepo.Delete(ctx, key); err == nil {
				break // Успешно удалено
			}

			// Проверяем, не отменён ли контекст
			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < 2 {
				sleepTime := jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
