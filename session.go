package main

import "pipe-tools/models"

// Session is the worker acting on the current command.
type Session struct {
	Worker *models.Worker
}

func (session *Session) IsAdmin() bool {
	return session != nil && session.Worker != nil && session.Worker.Role == models.RoleAdmin
}

func RequireAdmin(session *Session) error {
	if !session.IsAdmin() {
		return ErrAdminRequired
	}

	return nil
}
