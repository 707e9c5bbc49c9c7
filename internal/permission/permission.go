/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package permission is the authorization engine of the platform.
// The whole policy lives in the Decide function: a pure function over a capability
// snapshot, so every rule can be tested without a database or a request in sight.
package permission

import (
	"yamdb/internal/apperr"
	"yamdb/internal/entity"
)

// Action is what the caller wants to do on a resource class.
type Action int

const (
	ActionRead   Action = iota // Fetch one, list, filter
	ActionCreate               // Create a new instance
	ActionModify               // Update or delete an existing instance
)

// Resource is the class of the target. Instance specific facts (who owns it)
// travel inside the Capability, not here.
type Resource int

const (
	ResourceCategory Resource = iota
	ResourceGenre
	ResourceTitle
	ResourceReview
	ResourceComment
	ResourceAccount    // A user record, through the admin surface
	ResourceOwnProfile // The caller's own user record ("me")
)

// Capability is the snapshot of everything the policy may look at.
// Owner is meaningful only for instance level checks, callers pass false otherwise.
type Capability struct {
	Authenticated bool        // A valid token was presented
	Role          entity.Role // Role of the identity, empty when anonymous
	Superuser     bool        // Superuser flag, grants admin regardless of Role
	Owner         bool        // The identity authored / owns the target instance
}

// Decision of the engine for one (capability, action, resource) triple.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated // No identity: the caller must log in first
	DenyForbidden       // Identity known, action still not allowed
)

// Snapshot builds the capability of a user. A nil user is an anonymous caller.
func Snapshot(u *entity.User, owner bool) Capability {
	if u == nil {
		return Capability{}
	}
	return Capability{
		Authenticated: true,
		Role:          u.Role,
		Superuser:     u.Superuser,
		Owner:         owner,
	}
}

func (c Capability) isAdmin() bool {
	return c.Authenticated && (c.Role == entity.RoleAdmin || c.Superuser)
}

func (c Capability) isModerator() bool {
	return c.Authenticated && c.Role == entity.RoleModerator
}

// Decide applies the policy table.
//
//	Category, Genre, Title   read anyone / write admin
//	Review, Comment          read anyone / create any authenticated / modify admin, moderator or author
//	Account (admin surface)  admin only, reads included
//	Own profile              the owning, authenticated identity only
func Decide(c Capability, action Action, resource Resource) Decision {
	switch resource {
	case ResourceCategory, ResourceGenre, ResourceTitle:
		if action == ActionRead {
			return Allow
		}
		return adminOnly(c)

	case ResourceReview, ResourceComment:
		switch action {
		case ActionRead:
			return Allow
		case ActionCreate:
			if !c.Authenticated {
				return DenyUnauthenticated
			}
			return Allow
		default:
			if !c.Authenticated {
				return DenyUnauthenticated
			}
			if c.isAdmin() || c.isModerator() || c.Owner {
				return Allow
			}
			return DenyForbidden
		}

	case ResourceAccount:
		return adminOnly(c)

	case ResourceOwnProfile:
		if !c.Authenticated {
			return DenyUnauthenticated
		}
		if c.Owner {
			return Allow
		}
		return DenyForbidden
	}

	return DenyForbidden
}

func adminOnly(c Capability) Decision {
	if !c.Authenticated {
		return DenyUnauthenticated
	}
	if c.isAdmin() {
		return Allow
	}
	return DenyForbidden
}

// Err turns a decision into the matching taxonomy error, nil on Allow.
func Err(d Decision) error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return apperr.Unauthorized("authentication credentials were not provided")
	default:
		return apperr.Forbidden("you do not have permission to perform this action")
	}
}
