package main

import (
	"fmt"
	"sync"

	"github.com/xy-planning-network/dispatch"
	"github.com/xy-planning-network/dispatch/http/middleware"
)

// users mocks a user store for example purposes.
type users struct {
	mu  sync.Mutex
	all []user
}

func (u *users) add(name string) uint {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.all = append(u.all, user{Name: name})
	return uint(len(u.all) - 1)
}

func (u *users) GetByID(id uint) (middleware.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if int(id) > len(u.all)-1 {
		return nil, fmt.Errorf("%w: user %d", dispatch.ErrNotExist, id)
	}

	return u.all[id], nil
}

type user struct {
	Name string
}

func (user) HasAccess() bool { return true }
