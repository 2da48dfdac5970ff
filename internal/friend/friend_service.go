package friend

import (
	"fmt"

	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

// FriendService owns the friend-request lifecycle and the friendship edges it
// produces. Every mutating operation runs as one transaction.
type FriendService interface {
	Create(fromID, toID uint) (*FriendRequest, error)
	Get(requestID uint) (*FriendRequest, error)
	List(profileID uint, direction request.Direction) ([]FriendRequest, error)
	Accept(requestID, actorID uint) error
	Ignore(requestID, actorID uint) error
	Withdraw(requestID, actorID uint) error

	ListFriends(profileID uint) ([]profile.Profile, error)
	Unfriend(profileID, otherID uint) error
}

type friendService struct {
	repo FriendRepository
}

// NewFriendService creates a new FriendService.
func NewFriendService(repo FriendRepository) FriendService {
	return &friendService{repo: repo}
}

// friendKind binds the friend-request variant to the request engine over the
// given (transactional) repository.
func friendKind(repo FriendRepository) request.Kind {
	return request.Kind{
		Name: "friend request",
		Fetch: func(id uint) (request.Pending, error) {
			fr, err := repo.GetRequestByIDForUpdate(id)
			if err != nil || fr == nil {
				return nil, err
			}
			return fr, nil
		},
		Recipient: func(p request.Pending, actorID uint) (bool, error) {
			return p.(*FriendRequest).ToProfileID == actorID, nil
		},
		Sender: func(p request.Pending, actorID uint) (bool, error) {
			return p.(*FriendRequest).FromProfileID == actorID, nil
		},
		OnAccept: func(p request.Pending) error {
			fr := p.(*FriendRequest)
			return repo.AddFriendship(fr.FromProfileID, fr.ToProfileID)
		},
		Discard: func(p request.Pending) error {
			return repo.DeleteRequest(p.RequestID())
		},
	}
}

func (s *friendService) Create(fromID, toID uint) (*FriendRequest, error) {
	if fromID == toID {
		return nil, apperrors.Validation("cannot send a friend request to yourself")
	}

	var created *FriendRequest
	err := s.repo.WithTransaction(func(txRepo FriendRepository) error {
		exists, err := txRepo.ProfileExists(toID)
		if err != nil {
			return fmt.Errorf("failed to look up recipient profile: %w", err)
		}
		if !exists {
			return apperrors.NotFound("recipient profile not found")
		}

		if pending, err := txRepo.GetPendingRequest(fromID, toID); err != nil {
			return err
		} else if pending != nil {
			return apperrors.Validation("friend request already sent")
		}
		if pending, err := txRepo.GetPendingRequest(toID, fromID); err != nil {
			return err
		} else if pending != nil {
			return apperrors.Validation("friend request already received from this user")
		}

		friends, err := txRepo.AreFriends(fromID, toID)
		if err != nil {
			return err
		}
		if friends {
			return apperrors.Validation("this user is already your friend")
		}

		created = &FriendRequest{FromProfileID: fromID, ToProfileID: toID}
		return txRepo.CreateRequest(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *friendService) Get(requestID uint) (*FriendRequest, error) {
	fr, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if fr == nil {
		return nil, apperrors.NotFound("friend request not found")
	}
	return fr, nil
}

func (s *friendService) List(profileID uint, direction request.Direction) ([]FriendRequest, error) {
	return s.repo.ListRequests(profileID, direction)
}

func (s *friendService) Accept(requestID, actorID uint) error {
	return s.repo.WithTransaction(func(txRepo FriendRepository) error {
		return request.Accept(friendKind(txRepo), requestID, actorID)
	})
}

func (s *friendService) Ignore(requestID, actorID uint) error {
	return s.repo.WithTransaction(func(txRepo FriendRepository) error {
		return request.Ignore(friendKind(txRepo), requestID, actorID)
	})
}

func (s *friendService) Withdraw(requestID, actorID uint) error {
	return s.repo.WithTransaction(func(txRepo FriendRepository) error {
		return request.Withdraw(friendKind(txRepo), requestID, actorID)
	})
}

func (s *friendService) ListFriends(profileID uint) ([]profile.Profile, error) {
	return s.repo.ListFriends(profileID)
}

func (s *friendService) Unfriend(profileID, otherID uint) error {
	if profileID == otherID {
		return apperrors.Validation("cannot unfriend yourself")
	}
	return s.repo.WithTransaction(func(txRepo FriendRepository) error {
		friends, err := txRepo.AreFriends(profileID, otherID)
		if err != nil {
			return err
		}
		if !friends {
			return apperrors.Validation("this user is not your friend")
		}
		return txRepo.RemoveFriendship(profileID, otherID)
	})
}
