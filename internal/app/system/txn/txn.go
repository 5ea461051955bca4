// internal/app/system/txn/txn.go

// Package txn wraps multi-document writes in a MongoDB transaction when the
// server supports one (replica set / mongos). On standalone servers, where
// transactions are rejected, callers fall back to running the same function
// as ordered sequential writes. The fallback narrows but does not close the
// inconsistency window; the write order inside fn is what keeps the
// user↔chapter relationship recoverable.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a session transaction on client. If the
// deployment does not support transactions, fn is re-run outside any
// session so single-node dev setups keep working.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// Transaction-unsupported server error codes:
// 20 IllegalOperation, 51 (no such command on old servers),
// 263 OperationNotSupportedInTransaction.
var unsupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, old version). Matching is
// best-effort: known command error codes first, then keyword pairs that
// different driver/server versions produce.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && unsupportedCodes[ce.Code] {
		return true
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") && strings.Contains(s, "replica set") {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	if strings.Contains(s, "transaction") && strings.Contains(s, "session") {
		return true
	}
	if strings.Contains(s, "illegal operation") && strings.Contains(s, "transaction") {
		return true
	}
	return false
}
