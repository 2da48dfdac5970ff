package request

import (
	"testing"

	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

type note struct {
	id       uint
	from, to uint
}

func (n *note) RequestID() uint { return n.id }

// noteStore drives the engine with a minimal in-memory kind.
type noteStore struct {
	rows     map[uint]*note
	accepted []uint
}

func (s *noteStore) kind() Kind {
	return Kind{
		Name: "note",
		Fetch: func(id uint) (Pending, error) {
			n, ok := s.rows[id]
			if !ok {
				return nil, nil
			}
			return n, nil
		},
		Recipient: func(p Pending, actorID uint) (bool, error) {
			return p.(*note).to == actorID, nil
		},
		Sender: func(p Pending, actorID uint) (bool, error) {
			return p.(*note).from == actorID, nil
		},
		OnAccept: func(p Pending) error {
			s.accepted = append(s.accepted, p.RequestID())
			return nil
		},
		Discard: func(p Pending) error {
			delete(s.rows, p.RequestID())
			return nil
		},
	}
}

func newNoteStore() *noteStore {
	return &noteStore{rows: map[uint]*note{
		1: {id: 1, from: 10, to: 20},
	}}
}

func TestAcceptAppliesEffectThenDiscards(t *testing.T) {
	s := newNoteStore()
	if err := Accept(s.kind(), 1, 20); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(s.accepted) != 1 || s.accepted[0] != 1 {
		t.Fatalf("side effect not applied: %v", s.accepted)
	}
	if _, ok := s.rows[1]; ok {
		t.Fatalf("row should be discarded after accept")
	}
	if err := Accept(s.kind(), 1, 20); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("replayed accept: want not-found, got %v", err)
	}
}

func TestTransitionAuthorization(t *testing.T) {
	tests := []struct {
		name string
		call func(k Kind) error
		want apperrors.Kind
	}{
		{"accept by sender", func(k Kind) error { return Accept(k, 1, 10) }, apperrors.KindForbidden},
		{"accept by stranger", func(k Kind) error { return Accept(k, 1, 30) }, apperrors.KindForbidden},
		{"ignore by sender", func(k Kind) error { return Ignore(k, 1, 10) }, apperrors.KindForbidden},
		{"withdraw by recipient", func(k Kind) error { return Withdraw(k, 1, 20) }, apperrors.KindForbidden},
		{"accept of missing row", func(k Kind) error { return Accept(k, 42, 20) }, apperrors.KindNotFound},
		{"withdraw of missing row", func(k Kind) error { return Withdraw(k, 42, 10) }, apperrors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newNoteStore()
			err := tt.call(s.kind())
			if !apperrors.IsKind(err, tt.want) {
				t.Fatalf("wrong error kind: %v", err)
			}
			if len(s.accepted) != 0 {
				t.Fatalf("failed transition must not apply the side effect")
			}
			if _, ok := s.rows[1]; !ok {
				t.Fatalf("failed transition must keep the row")
			}
		})
	}
}

func TestIgnoreSkipsSideEffect(t *testing.T) {
	s := newNoteStore()
	if err := Ignore(s.kind(), 1, 20); err != nil {
		t.Fatalf("Ignore: %v", err)
	}
	if len(s.accepted) != 0 {
		t.Fatalf("ignore must not apply the accept effect")
	}
	if _, ok := s.rows[1]; ok {
		t.Fatalf("ignore must discard the row")
	}
}

func TestWithdrawBySender(t *testing.T) {
	s := newNoteStore()
	if err := Withdraw(s.kind(), 1, 10); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if _, ok := s.rows[1]; ok {
		t.Fatalf("withdraw must discard the row")
	}
}

func TestParseDirection(t *testing.T) {
	for _, valid := range []string{"sent", "received"} {
		d, err := ParseDirection(valid)
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", valid, err)
		}
		if string(d) != valid {
			t.Fatalf("direction mangled: %q", d)
		}
	}
	if _, err := ParseDirection("inbound"); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("invalid direction: want validation, got %v", err)
	}
}
