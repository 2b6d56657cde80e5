package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sitehost/internal/observability/metrics"
	"sitehost/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	LoadAll(ctx context.Context) ([]domain.User, error)
	SaveAll(ctx context.Context, users []domain.User) error
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

// FileRepository persists the whole user collection as a single JSON
// document. Every mutation rewrites the file; a mutex serializes the
// load-check-append-save cycle so two concurrent registrations cannot
// both pass the uniqueness check.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) LoadAll(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users, err := r.load()
	if err != nil {
		metrics.StorageOperationsTotal.WithLabelValues("load", "error").Inc()
		return nil, err
	}

	metrics.StorageOperationsTotal.WithLabelValues("load", "ok").Inc()
	return users, nil
}

func (r *FileRepository) SaveAll(ctx context.Context, users []domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.save(users); err != nil {
		metrics.StorageOperationsTotal.WithLabelValues("save", "error").Inc()
		return err
	}

	metrics.StorageOperationsTotal.WithLabelValues("save", "ok").Inc()
	return nil
}

// Create appends user to the collection. Email uniqueness is checked
// case-insensitively inside the critical section.
func (r *FileRepository) Create(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		metrics.StorageOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailAlreadyExists
		}
	}

	users = append(users, user)

	if err := r.save(users); err != nil {
		metrics.StorageOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.StorageOperationsTotal.WithLabelValues("create", "ok").Inc()
	return nil
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return domain.User{}, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return domain.User{}, ErrUserNotFound
}

func (r *FileRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return domain.User{}, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}

	return domain.User{}, ErrUserNotFound
}

// load reads the full collection. A missing file is an empty, valid
// collection: the store self-initializes on first write.
func (r *FileRepository) load() ([]domain.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	if len(data) == 0 {
		return []domain.User{}, nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	return users, nil
}

// save rewrites the collection through a temp file and rename, so a
// concurrent reader never observes a partial write.
func (r *FileRepository) save(users []domain.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "users-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write users file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace users file: %w", err)
	}

	return nil
}
