// Package services defines the business logic for recipe submissions.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages is performed at the handler layer.
package services

import "errors"

var (
	// ErrEmptySubmission is returned when a submission carries neither a
	// food name nor a usable image file. No side effects occur in that case.
	ErrEmptySubmission = errors.New("food name or image required")

	// ErrChatNotFound indicates that the requested chat record does not exist.
	ErrChatNotFound = errors.New("chat not found")
)
