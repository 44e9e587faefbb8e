// Package identity resolves symbolic user and group names against the
// host identity database and applies process ownership and umask changes,
// typically right after a privileged fork.
package identity

import (
	"os/user"
	"strconv"
)

// ResolveUserID maps a user name to its numeric uid. A numeric string
// passes through unchanged. The second return is false when the name
// cannot be resolved; resolution never fails with an error.
func ResolveUserID(name string) (int, bool) {
	if uid, err := strconv.Atoi(name); err == nil {
		return uid, true
	}
	u, err := user.Lookup(name)
	if err != nil {
		return 0, false
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, false
	}
	return uid, true
}

// ResolveGroupID maps a group name to its numeric gid. A numeric string
// passes through unchanged. The second return is false when the name
// cannot be resolved.
func ResolveGroupID(name string) (int, bool) {
	if gid, err := strconv.Atoi(name); err == nil {
		return gid, true
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, false
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, false
	}
	return gid, true
}

// OwnerResult reports the two privilege transitions independently so the
// caller can apply its own policy to a partial drop.
type OwnerResult struct {
	UserErr  error
	GroupErr error
}

// Applied reports whether every attempted transition succeeded.
func (r OwnerResult) Applied() bool {
	return r.UserErr == nil && r.GroupErr == nil
}
