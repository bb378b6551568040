package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bjaus/routespec/web"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is a user resource.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type userStore struct {
	mu      sync.RWMutex
	users   map[string]*User
	avatars map[string][]byte
	nextID  int
}

func newUserStore() *userStore {
	return &userStore{
		users: map[string]*User{
			"1": {ID: "1", Name: "Alice", Email: "alice@example.com"},
			"2": {ID: "2", Name: "Bob", Email: "bob@example.com"},
		},
		avatars: map[string][]byte{},
		nextID:  3,
	}
}

func (s *userStore) list() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b User) int {
		return compareIDs(a.ID, b.ID)
	})
	return out
}

func (s *userStore) get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

func (s *userStore) create(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.users[u.ID] = &u
	return u
}

func (s *userStore) update(id string, u User) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return User{}, false
	}
	u.ID = id
	s.users[id] = &u
	return u, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	delete(s.avatars, id)
	return true
}

// usersView serves the users collection.
type usersView struct {
	store *userStore
}

func (v *usersView) Methods() web.MethodSet {
	return web.MethodSet{
		Get: web.Func(v.list, web.WithDoc(`List users.
---
summary: List users
responses:
  200:
    description: All users, ordered by ID
`)),
		Post: web.Func(v.create, web.WithDoc(`Create a user.
---
summary: Create user
requestBody:
  required: true
  content:
    application/json:
      schema:
        type: object
        required: [name, email]
        properties:
          name: {type: string}
          email: {type: string, format: email}
responses:
  201:
    description: User created
  400:
    description: Malformed body
`)),
	}
}

func (v *usersView) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, v.store.list())
}

func (v *usersView) create(w http.ResponseWriter, r *http.Request) {
	u, err := decodeUser(r.Body)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v.store.create(u))
}

// userView serves a single user.
type userView struct {
	store *userStore
}

func (v *userView) Methods() web.MethodSet {
	return web.MethodSet{
		Get: web.Func(v.get, web.WithDoc(`
			Get a user.
			---
			summary: Get user
			parameters:
			  - {name: id, in: path, required: true, schema: {type: string}}
			responses:
			  200:
			    description: The user
			  404:
			    description: Unknown user
		`)),
		Put: web.Func(v.update, web.WithDoc(`
			Replace a user.
			---
			summary: Update user
			responses:
			  200:
			    description: The updated user
			  404:
			    description: Unknown user
		`)),
		Delete: web.Func(v.delete, web.WithDoc(`Delete a user. No YAML block, so the operation stays empty.`)),
	}
}

func (v *userView) get(w http.ResponseWriter, r *http.Request) {
	u, ok := v.store.get(r.PathValue("id"))
	if !ok {
		web.WriteError(w, web.Error(http.StatusNotFound, "user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (v *userView) update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUser(r.Body)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	u, ok := v.store.update(r.PathValue("id"), in)
	if !ok {
		web.WriteError(w, web.Error(http.StatusNotFound, "user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (v *userView) delete(w http.ResponseWriter, r *http.Request) {
	if !v.store.delete(r.PathValue("id")) {
		web.WriteError(w, web.Error(http.StatusNotFound, "user not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *userStore) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data, err := io.ReadAll(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		web.WriteError(w, web.Errorf(status, "read avatar: %v", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		web.WriteError(w, web.Error(http.StatusNotFound, "user not found"))
		return
	}
	s.avatars[id] = data
	w.WriteHeader(http.StatusNoContent)
}

func decodeUser(body io.Reader) (User, error) {
	var u User
	if err := json.NewDecoder(body).Decode(&u); err != nil {
		return User{}, web.Errorf(http.StatusBadRequest, "decode user: %v", err)
	}
	if err := validate.Struct(u); err != nil {
		return User{}, web.Errorf(http.StatusBadRequest, "invalid user: %v", err)
	}
	return u, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(v)
}

func compareIDs(a, b string) int {
	ai, _ := strconv.Atoi(a)
	bi, _ := strconv.Atoi(b)
	return ai - bi
}
