package userControllers

import (
	"log"
	"sort"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/auth"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/store"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Service struct {
	store  *store.Store
	tokens *auth.TokenIssuer
	clock  clock.Clock
}

func NewService(st *store.Store, tokens *auth.TokenIssuer, clk clock.Clock) *Service {
	return &Service{
		store:  st,
		tokens: tokens,
		clock:  clk,
	}
}

// Register creates a user keyed by email. Existing users are never replaced.
func (s *Service) Register(req RegisterRequest) (models.User, error) {
	fields := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"phone", req.Phone},
		{"address", req.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return models.User{}, models.NewFieldError(f.name, "is required")
		}
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  auth.HashPassword(req.Password),
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: s.clock.Now().UTC(),
	}

	err := s.store.UpdateUsers(func(users map[string]models.User) error {
		if _, ok := users[req.Email]; ok {
			return errors.AlreadyExistsf("user %s", req.Email)
		}
		users[req.Email] = user
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	log.Printf("✅ User %s registered", user.Email)
	return user, nil
}

// Login checks the credentials and returns the profile with a fresh token.
func (s *Service) Login(req LoginRequest) (models.Profile, string, error) {
	user, ok := s.store.Users()[req.Email]
	if !ok || req.Password == "" || !auth.CheckPassword(user.Password, req.Password) {
		return models.Profile{}, "", errors.Unauthorizedf("invalid credentials for %s", req.Email)
	}

	token, err := s.tokens.Issue(user.Email, user.Name)
	if err != nil {
		return models.Profile{}, "", errors.Trace(err)
	}
	return user.Profile(false), token, nil
}

// Profiles lists registered users without password hashes, oldest first,
// optionally filtered by a case-insensitive match on name or email.
func (s *Service) Profiles(query string) []models.Profile {
	users := s.store.Users()
	list := make([]models.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Email < list[j].Email
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	query = strings.ToLower(strings.TrimSpace(query))
	profiles := []models.Profile{}
	for _, u := range list {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		profiles = append(profiles, u.Profile(true))
	}
	return profiles
}
