package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tu-usuario/clientes-pro/internal/domain"
	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
	"github.com/tu-usuario/clientes-pro/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda los usuarios en su propio documento JSON. A diferencia del
// store de clientes, aquí sí hay estado mutable compartido entre peticiones
// de registro, de ahí el mutex.
type UserRepo struct {
	path string

	mu    sync.Mutex
	users []userRecord
}

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserRepo carga el documento de usuarios (inexistente = vacío).
func NewUserRepo(path string) (*UserRepo, error) {
	r := &UserRepo{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &r.users); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return r, nil
}

func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users = append(r.users, toUserRecord(user))
	if err := r.flush(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return err
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return fromUserRecord(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return fromUserRecord(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) flush() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar usuarios: %w", err)
	}
	return writeAtomic(r.path, data)
}

func toUserRecord(u *entity.User) userRecord {
	return userRecord{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash,
		Name: u.Name, Role: u.Role, Status: u.Status,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func fromUserRecord(rec userRecord) *entity.User {
	return &entity.User{
		ID: rec.ID, Email: rec.Email, PasswordHash: rec.PasswordHash,
		Name: rec.Name, Role: rec.Role, Status: rec.Status,
		CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
	}
}
