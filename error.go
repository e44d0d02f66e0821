package main

import "errors"

var (
	ErrCouldNotResolvePath                 = errors.New("could not resolve path")
	ErrProjectRootNotSet                   = errors.New("the project_root setting is not set")
	ErrEmptyName                           = errors.New("name must not be empty")
	ErrAlreadyExists                       = errors.New("already exists")
	ErrNotFound                            = errors.New("not found")
	ErrUnknownParentKind                   = errors.New("unknown version parent kind")
	ErrVersionExists                       = errors.New("a version with this number already exists")
	ErrInvalidVersionNumber                = errors.New("version numbers start at 1")
	ErrInvalidStatus                       = errors.New("invalid status")
	ErrInvalidRole                         = errors.New("invalid role")
	ErrUnknownSetting                      = errors.New("unknown setting")
	ErrAdminRequired                       = errors.New("this action requires an admin worker")
	ErrInvalidCredentials                  = errors.New("invalid worker name or password")
	ErrLoginRequired                       = errors.New("this action requires a worker, use --worker")
	ErrNotOverwritingExistingDifferentFile = errors.New("not overwriting existing (different) file")
	ErrCopyVerificationFailed              = errors.New("copied file does not match its source")
)
