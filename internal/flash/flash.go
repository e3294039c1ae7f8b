// Package flash holds one-shot notices between a redirect and the next
// render, keyed by a per-browser cookie.
package flash

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const cookieName = "fid"

type Store struct {
	mu      sync.Mutex
	pending map[string][]string
	secure  bool
}

func NewStore(secure bool) *Store {
	return &Store{pending: make(map[string][]string), secure: secure}
}

func (s *Store) key(c *fiber.Ctx) string {
	fid := c.Cookies(cookieName)
	if fid == "" {
		fid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    fid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   s.secure,
			Expires:  time.Now().Add(24 * time.Hour),
		})
	}
	return fid
}

// Add queues a notice for the next rendered page.
func (s *Store) Add(c *fiber.Ctx, msg string) {
	k := s.key(c)
	s.mu.Lock()
	s.pending[k] = append(s.pending[k], msg)
	s.mu.Unlock()
}

// Pop returns and clears any queued notices.
func (s *Store) Pop(c *fiber.Ctx) []string {
	fid := c.Cookies(cookieName)
	if fid == "" {
		return nil
	}
	s.mu.Lock()
	msgs := s.pending[fid]
	delete(s.pending, fid)
	s.mu.Unlock()
	return msgs
}
