package auth

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/storage"
)

// TokenStore holds the current [models.AuthToken] and notifies subscribers when it changes.
//
// Values are copied on the way in and out.
type TokenStore struct {
	mu     sync.RWMutex
	token  *models.AuthToken
	subs   map[int]func(*models.AuthToken)
	nextID int
}

func NewTokenStore() *TokenStore {
	return &TokenStore{subs: make(map[int]func(*models.AuthToken))}
}

// Get returns a copy of the current token, or nil.
func (s *TokenStore) Get() *models.AuthToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token.Clone()
}

// Set replaces the current token.
func (s *TokenStore) Set(token *models.AuthToken) {
	s.mu.Lock()
	s.token = token.Clone()
	s.mu.Unlock()

	s.notify(token)
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	had := s.token != nil
	s.token = nil
	s.mu.Unlock()

	if had {
		s.notify(nil)
	}
}

// Subscribe registers fn to be called synchronously after every change. The returned func unregisters it.
func (s *TokenStore) Subscribe(fn func(*models.AuthToken)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *TokenStore) notify(token *models.AuthToken) {
	s.mu.RLock()
	fns := make([]func(*models.AuthToken), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(token.Clone())
	}
}

// PersistTokens restores a previously saved token into tokens and keeps store in sync with later changes.
func PersistTokens(tokens *TokenStore, store storage.SecureStorage, logger *log.Logger) (cancel func(), err error) {
	raw, err := store.Get(storage.KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth token: %w", err)
	}

	if raw != "" {
		var token models.AuthToken
		if err := json.Unmarshal([]byte(raw), &token); err != nil {
			logger.Warn("discarding unreadable auth token", "error", err)
			if err := store.Remove(storage.KeyAuthToken); err != nil {
				return nil, err
			}
		} else {
			tokens.Set(&token)
		}
	}

	return tokens.Subscribe(func(token *models.AuthToken) {
		if token == nil {
			if err := store.Remove(storage.KeyAuthToken); err != nil {
				logger.Error("failed to remove auth token", "error", err)
			}
			return
		}

		data, err := json.Marshal(token)
		if err != nil {
			logger.Error("failed to encode auth token", "error", err)
			return
		}
		if err := store.Set(storage.KeyAuthToken, string(data)); err != nil {
			logger.Error("failed to save auth token", "error", err)
		}
	}), nil
}
