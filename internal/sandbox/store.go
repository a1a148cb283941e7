package sandbox

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// user is the sandbox's internal user record. Passwords are bcrypt hashes
// even here; the sandbox mirrors the real API closely enough to develop the
// client against.
type user struct {
	domain.User
	passwordHash []byte
	active       bool
}

// store holds every sandbox collection behind one mutex. The sandbox is a
// development fixture; nothing survives a restart.
type store struct {
	mu sync.Mutex

	nextID int64

	users            map[int64]*user
	activationTokens map[string]activation
	resetTokens      map[string]activation

	properties   map[int64]domain.Property
	accounts     map[int64]domain.Account
	entities     map[int64]domain.Entity
	journals     map[int64]domain.Journal
	transactions map[int64]domain.Transaction
	payments     map[int64]domain.RentPayment
}

// activation pairs a one-time token with the user it belongs to.
type activation struct {
	userID int64
	token  string
}

func newStore() *store {
	return &store{
		users:            make(map[int64]*user),
		activationTokens: make(map[string]activation),
		resetTokens:      make(map[string]activation),
		properties:       make(map[int64]domain.Property),
		accounts:         make(map[int64]domain.Account),
		entities:         make(map[int64]domain.Entity),
		journals:         make(map[int64]domain.Journal),
		transactions:     make(map[int64]domain.Transaction),
		payments:         make(map[int64]domain.RentPayment),
	}
}

func (s *store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// createUser registers an inactive user and returns it with the activation
// uid/token pair the activation endpoint expects.
func (s *store) createUser(email, password, firstName, lastName string) (*domain.User, string, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, "", "", apperrors.ErrValidation
		}
	}
	id := s.allocID()
	u := &user{
		User:         domain.User{ID: id, Email: email, FirstName: firstName, LastName: lastName},
		passwordHash: hash,
	}
	s.users[id] = u

	uid := uuid.NewString()
	token := uuid.NewString()
	s.activationTokens[uid] = activation{userID: id, token: token}
	return &u.User, uid, token, nil
}

// activateUser consumes an activation uid/token pair.
func (s *store) activateUser(uid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	act, ok := s.activationTokens[uid]
	if !ok || act.token != token {
		return apperrors.ErrNotFound
	}
	u, ok := s.users[act.userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.active = true
	delete(s.activationTokens, uid)
	return nil
}

// authenticate checks credentials against an active user.
func (s *store) authenticate(email, password string) (*domain.User, error) {
	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.Email == email {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || !found.active {
		return nil, apperrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return &found.User, nil
}

// issueResetToken creates a password reset uid/token for the given email.
// The pair is returned so the server can log it; the sandbox has no mailer.
func (s *store) issueResetToken(email string) (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			uid := uuid.NewString()
			token := uuid.NewString()
			s.resetTokens[uid] = activation{userID: u.ID, token: token}
			return uid, token, true
		}
	}
	return "", "", false
}

// confirmReset consumes a reset token and replaces the user's password.
func (s *store) confirmReset(uid, token, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reset, ok := s.resetTokens[uid]
	if !ok || reset.token != token {
		return apperrors.ErrNotFound
	}
	u, ok := s.users[reset.userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.passwordHash = hash
	delete(s.resetTokens, uid)
	return nil
}

// setPassword changes a logged-in user's password after verifying the
// current one.
func (s *store) setPassword(userID int64, current, next string) error {
	s.mu.Lock()
	u, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(current)); err != nil {
		return apperrors.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	u.passwordHash = hash
	s.mu.Unlock()
	return nil
}

func (s *store) getUser(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := u.User
	return &copied, nil
}

func (s *store) updateUser(id int64, email, firstName, lastName string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u.Email = email
	u.FirstName = firstName
	u.LastName = lastName
	copied := u.User
	return &copied, nil
}

// accountRef resolves an account id to the nested ref served on reads.
// Callers must hold the mutex.
func (s *store) accountRefLocked(id int64) *domain.AccountRef {
	if a, ok := s.accounts[id]; ok {
		return &domain.AccountRef{ID: a.ID, Name: a.Name}
	}
	return nil
}

func (s *store) entityRefLocked(id int64) *domain.EntityRef {
	if e, ok := s.entities[id]; ok {
		return &domain.EntityRef{ID: e.ID, Name: e.Name}
	}
	return nil
}
