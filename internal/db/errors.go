package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsMongoDuplicateKeyError reports whether err is a MongoDB duplicate key
// error (code 11000), as raised when a unique index rejects an insert.
func IsMongoDuplicateKeyError(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, writeErr := range we.WriteErrors {
			if writeErr.Code == 11000 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeErr := range bwe.WriteErrors {
			if writeErr.Code == 11000 {
				return true
			}
		}
	}
	return false
}
