package internal

import (
	"context"
	"errors"
	"fmt"

	"devicehub-api/internal/models"
	"devicehub-api/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// prepareEmployee hashes a plaintext credential before it is stored. An
// update that carries no credential keeps the stored hash, since responses
// never expose it for a client to send back.
func (s *Server) prepareEmployee(ctx context.Context, id int64, e *models.Employee) error {
	if e.Credential == "" {
		if id == 0 {
			return nil
		}
		current, err := s.Store.Employees.Get(ctx, id)
		if err != nil {
			return err
		}
		e.Credential = current.Credential
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(e.Credential), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("credential: %w: longer than 72 bytes", store.ErrInvalid)
	}
	if err != nil {
		return fmt.Errorf("hash credential: %w", err)
	}
	e.Credential = string(hash)
	return nil
}
