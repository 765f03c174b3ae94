package services

import (
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/stores"
)

func requireAdmin(p *auth.Principal) error {
	if !p.IsAdmin() {
		return apperr.Forbidden("Access Denied: Admins Only")
	}
	return nil
}

func requireStudent(p *auth.Principal) error {
	if !p.IsStudent() {
		return apperr.Forbidden("Only students can do this")
	}
	return nil
}

// storeError maps repository failures onto the error taxonomy. what names the
// missing record in the NotFound message.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case stores.IsNotFound(err):
		return apperr.NotFound(what + " not found")
	case stores.IsDuplicate(err):
		return apperr.Conflict(what + " already exists")
	default:
		return apperr.Internal("database error", err)
	}
}
