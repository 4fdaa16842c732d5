package main

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNoEmailSender  = errors.New("no email sender configured: set EMAIL_DEV_DIR or Postmark tokens")
)
