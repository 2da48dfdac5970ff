// Package request implements the shared lifecycle of pending requests:
// friend requests, team invitations and match invitations all move through
// the same transitions (accept, ignore, withdraw), differing only in who is
// authorized and what accepting does. The pending row is the only persisted
// state; every terminal transition deletes it.
package request

import (
	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

// Direction selects which side of a pending request a listing returns.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// ParseDirection validates a direction string from the URL.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionSent, DirectionReceived:
		return Direction(s), nil
	}
	return "", apperrors.Validation("invalid request type %q, expected 'sent' or 'received'", s)
}

// Pending is a single pending request row of any kind.
type Pending interface {
	RequestID() uint
}

// Kind binds one request variant to the engine: how to load a pending row,
// who counts as recipient and sender, the accept side effect, and deletion.
// Callers construct a Kind over their transactional repository so that one
// engine call is one atomic unit.
type Kind struct {
	// Name appears in error messages, e.g. "friend request".
	Name string
	// Fetch loads the pending row, locked for the surrounding transaction.
	// Returning (nil, nil) means the row does not exist.
	Fetch func(id uint) (Pending, error)
	// Recipient reports whether actor may accept or ignore p.
	Recipient func(p Pending, actorID uint) (bool, error)
	// Sender reports whether actor may withdraw p.
	Sender func(p Pending, actorID uint) (bool, error)
	// OnAccept applies the side effect of acceptance (friend edge, roster
	// addition, match creation). Runs before the row is discarded.
	OnAccept func(p Pending) error
	// Discard deletes the pending row.
	Discard func(p Pending) error
}

// Accept resolves a pending request in the sender's favor: the recipient
// authorizes it, the side effect is applied, and the row is deleted. A second
// accept of the same id fails with a not-found error because the row is gone.
func Accept(k Kind, requestID, actorID uint) error {
	p, err := k.fetch(requestID)
	if err != nil {
		return err
	}
	ok, err := k.Recipient(p, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden("you can only accept %ss sent to you", k.Name)
	}
	if err := k.OnAccept(p); err != nil {
		return err
	}
	return k.Discard(p)
}

// Ignore resolves a pending request with no side effect. Same authorization
// as Accept.
func Ignore(k Kind, requestID, actorID uint) error {
	p, err := k.fetch(requestID)
	if err != nil {
		return err
	}
	ok, err := k.Recipient(p, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden("you can only ignore %ss sent to you", k.Name)
	}
	return k.Discard(p)
}

// Withdraw lets the sender retract a pending request before it is resolved.
func Withdraw(k Kind, requestID, actorID uint) error {
	p, err := k.fetch(requestID)
	if err != nil {
		return err
	}
	ok, err := k.Sender(p, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden("you can only withdraw %ss sent by you", k.Name)
	}
	return k.Discard(p)
}

func (k Kind) fetch(requestID uint) (Pending, error) {
	p, err := k.Fetch(requestID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("%s not found", k.Name)
	}
	return p, nil
}
