package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("mongo: failed to connect")
	ErrHealthcheckFailed      = errors.New("mongo: healthcheck failed")
	ErrEmptyConnectionURL     = errors.New("mongo: empty connection url, set MONGODB_URL")
	ErrEmptyDatabase          = errors.New("mongo: empty database name")
)
