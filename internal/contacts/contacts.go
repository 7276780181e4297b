// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contacts keeps each user's trusted contacts in memory. Nothing is
// persisted; the book is empty after a restart.
package contacts

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Type classifies the relationship to a contact.
type Type string

const (
	TypeFamily    Type = "family"
	TypeFriend    Type = "friend"
	TypeColleague Type = "colleague"
	TypeOther     Type = "other"
)

// Limits for contact fields and the number of contacts per user.
const (
	maxNameLen  = 200
	maxEmailLen = 320
	maxPhoneLen = 32
	MaxPerUser  = 50
)

// ErrNotFound is returned when a contact id does not exist for the user.
var ErrNotFound = errors.New("contacts: not found")

// ErrLimitReached is returned when a user already has MaxPerUser contacts.
var ErrLimitReached = fmt.Errorf("contacts: limit of %d reached", MaxPerUser)

// ValidationError describes the first invalid field of a contact.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Contact is a person who should receive the user's final message.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims whitespace and defaults an empty type to TypeOther.
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Type = Type(strings.ToLower(strings.TrimSpace(string(c.Type))))
	if c.Type == "" {
		c.Type = TypeOther
	}
}

// Validate checks the contact fields and returns the first problem found.
func (c Contact) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "Name is required."}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return &ValidationError{Field: "name", Message: "Name is too long (max 200 characters)."}
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required."}
	}
	if len(email) > maxEmailLen {
		return &ValidationError{Field: "email", Message: "Email is too long."}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "Email is invalid."}
	}

	if !validPhone(strings.TrimSpace(c.Phone)) {
		return &ValidationError{Field: "phone", Message: "Phone is invalid."}
	}

	switch c.Type {
	case TypeFamily, TypeFriend, TypeColleague, TypeOther:
	default:
		return &ValidationError{Field: "type", Message: "Type must be one of family, friend, colleague, other."}
	}
	return nil
}

// validPhone accepts an empty value or digits with common separators.
func validPhone(p string) bool {
	if p == "" {
		return true
	}
	if len(p) > maxPhoneLen {
		return false
	}
	digits := 0
	for i, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 3
}

// Store holds contacts per user id. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	books map[string][]Contact
	now   func() time.Time
}

// NewStore creates an empty contact store.
func NewStore() *Store {
	return &Store{
		books: make(map[string][]Contact),
		now:   time.Now,
	}
}

// List returns the user's contacts in insertion order.
func (s *Store) List(userID string) []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book := s.books[userID]
	out := make([]Contact, len(book))
	copy(out, book)
	return out
}

// Add normalises and validates c, assigns it a new id, and appends it to
// the user's book.
func (s *Store) Add(userID string, c Contact) (Contact, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.books[userID]) >= MaxPerUser {
		return Contact{}, ErrLimitReached
	}
	c.ID = uuid.New()
	c.CreatedAt = s.now().UTC()
	s.books[userID] = append(s.books[userID], c)
	return c, nil
}

// Remove deletes a contact from the user's book.
func (s *Store) Remove(userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.books[userID]
	for i, c := range book {
		if c.ID == id {
			s.books[userID] = append(book[:i:i], book[i+1:]...)
			if len(s.books[userID]) == 0 {
				delete(s.books, userID)
			}
			return nil
		}
	}
	return ErrNotFound
}
