package fsmeta

import (
	"os/user"
	"strconv"
	"sync"
)

// Owners resolves uid/gid to account names, caching lookups for the life of
// the process. Unknown ids fall back to their decimal form.
type Owners struct {
	mu     sync.Mutex
	users  map[uint32]string
	groups map[uint32]string

	lookupUser  func(uid string) (*user.User, error)
	lookupGroup func(gid string) (*user.Group, error)
}

// NewOwners creates a resolver backed by os/user
func NewOwners() *Owners {
	return &Owners{
		users:       make(map[uint32]string),
		groups:      make(map[uint32]string),
		lookupUser:  user.LookupId,
		lookupGroup: user.LookupGroupId,
	}
}

// User returns the user name for uid
func (o *Owners) User(uid uint32) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if name, ok := o.users[uid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := o.lookupUser(id); err == nil && u.Username != "" {
		name = u.Username
	}
	o.users[uid] = name
	return name
}

// Group returns the group name for gid
func (o *Owners) Group(gid uint32) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if name, ok := o.groups[gid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(gid), 10)
	name := id
	if g, err := o.lookupGroup(id); err == nil && g.Name != "" {
		name = g.Name
	}
	o.groups[gid] = name
	return name
}
