package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
)

const (
	emailPrefix = "email:"
	idPrefix    = "id:"
)

// UserStore keeps users in process memory. Entries never expire.
type UserStore struct {
	mu     sync.Mutex
	items  *cache.Cache
	nextID int
}

func NewUserStore() port.UserRepository {
	return &UserStore{
		items:  cache.New(cache.NoExpiration, 0),
		nextID: 1,
	}
}

func emailKey(email string) string {
	return emailPrefix + email
}

func idKey(id domain.UserID) string {
	return idPrefix + strconv.Itoa(int(id))
}

func (s *UserStore) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	user, ok := s.lookup(email)

	if !ok || user.IsDeleted() {
		return domain.UserRecord{}, false, nil
	}

	return user.Record(), true, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, ok := s.lookup(email)

	if !ok {
		return domain.User{}, fmt.Errorf("user with email %s not found", email)
	}

	return user, nil
}

func (s *UserStore) Create(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = domain.UserID(s.nextID)

	if err := s.items.Add(emailKey(user.Email), user, cache.NoExpiration); err != nil {
		return domain.User{}, domain.ErrUserAlreadyExists
	}

	s.items.Set(idKey(user.ID), user.Email, cache.NoExpiration)
	s.nextID++

	return user, nil
}

func (s *UserStore) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.items.Get(idKey(userID))

	if !ok {
		return fmt.Errorf("user with id %d not found", userID)
	}

	user, ok := s.lookup(email.(string))

	if !ok {
		return fmt.Errorf("user with id %d not found", userID)
	}

	user.AccessToken = token.String()
	user.UpdatedAt = time.Now().UTC()

	s.items.Set(emailKey(user.Email), user, cache.NoExpiration)

	return nil
}

func (s *UserStore) lookup(email string) (domain.User, bool) {
	value, ok := s.items.Get(emailKey(email))

	if !ok {
		return domain.User{}, false
	}

	return value.(domain.User), true
}
