package team

import (
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

// TeamInvitationService manages pending invitations onto a team roster.
// Invitations are only ever sent by a team admin to one of their friends;
// accepting one puts the recipient on the roster.
type TeamInvitationService interface {
	Create(fromProfileID uint, req *CreateTeamInvitationRequest) (*TeamInvitation, error)
	Get(invitationID uint) (*TeamInvitation, error)
	List(profileID uint, direction request.Direction) ([]TeamInvitation, error)
	Accept(invitationID, actorProfileID uint) error
	Ignore(invitationID, actorProfileID uint) error
	Withdraw(invitationID, actorProfileID uint) error
}

type teamInvitationService struct {
	repo TeamRepository
}

func NewTeamInvitationService(repo TeamRepository) TeamInvitationService {
	return &teamInvitationService{repo: repo}
}

// teamInvitationKind binds team invitations to the request engine. The
// recipient is the invited profile; withdrawing is allowed for the original
// sender and for any current admin of the inviting team.
func teamInvitationKind(repo TeamRepository) request.Kind {
	return request.Kind{
		Name: "team invitation",
		Fetch: func(id uint) (request.Pending, error) {
			inv, err := repo.GetInvitationByIDForUpdate(id)
			if err != nil || inv == nil {
				return nil, err
			}
			return inv, nil
		},
		Recipient: func(p request.Pending, actorID uint) (bool, error) {
			return p.(*TeamInvitation).ToProfileID == actorID, nil
		},
		Sender: func(p request.Pending, actorID uint) (bool, error) {
			inv := p.(*TeamInvitation)
			if inv.FromProfileID == actorID {
				return true, nil
			}
			return repo.IsAdmin(inv.TeamID, actorID)
		},
		OnAccept: func(p request.Pending) error {
			inv := p.(*TeamInvitation)
			isMember, err := repo.IsMember(inv.TeamID, inv.ToProfileID)
			if err != nil {
				return err
			}
			if isMember {
				return nil
			}
			return repo.AddMember(&TeamMember{TeamID: inv.TeamID, ProfileID: inv.ToProfileID})
		},
		Discard: func(p request.Pending) error {
			return repo.DeleteInvitation(p.RequestID())
		},
	}
}

func (s *teamInvitationService) Create(fromProfileID uint, req *CreateTeamInvitationRequest) (*TeamInvitation, error) {
	var created *TeamInvitation
	err := s.repo.WithTransaction(func(txRepo TeamRepository) error {
		if fromProfileID == req.ToProfileID {
			return apperrors.Validation("cannot send a team invitation to yourself")
		}
		exists, err := txRepo.ProfileExists(req.ToProfileID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound("recipient profile not found")
		}
		team, err := txRepo.GetTeamByID(req.TeamID)
		if err != nil {
			return err
		}
		if team == nil {
			return apperrors.NotFound("team not found")
		}
		isAdmin, err := txRepo.IsAdmin(req.TeamID, fromProfileID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return apperrors.Validation("only team admins can send team invitations")
		}
		friends, err := txRepo.AreFriends(fromProfileID, req.ToProfileID)
		if err != nil {
			return err
		}
		if !friends {
			return apperrors.Validation("you can only invite your friends to a team")
		}
		isMember, err := txRepo.IsMember(req.TeamID, req.ToProfileID)
		if err != nil {
			return err
		}
		if isMember {
			return apperrors.Validation("this user is already in the team")
		}
		dup, err := txRepo.GetPendingInvitation(fromProfileID, req.ToProfileID)
		if err != nil {
			return err
		}
		if dup != nil {
			return apperrors.Validation("team invitation already sent")
		}
		reverse, err := txRepo.GetPendingInvitation(req.ToProfileID, fromProfileID)
		if err != nil {
			return err
		}
		if reverse != nil {
			return apperrors.Validation("team invitation already received from this user")
		}
		inv := &TeamInvitation{
			FromProfileID: fromProfileID,
			ToProfileID:   req.ToProfileID,
			TeamID:        req.TeamID,
		}
		if err := txRepo.CreateInvitation(inv); err != nil {
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *teamInvitationService) Get(invitationID uint) (*TeamInvitation, error) {
	inv, err := s.repo.GetInvitationByID(invitationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperrors.NotFound("team invitation not found")
	}
	return inv, nil
}

func (s *teamInvitationService) List(profileID uint, direction request.Direction) ([]TeamInvitation, error) {
	return s.repo.ListInvitations(profileID, direction)
}

func (s *teamInvitationService) Accept(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		return request.Accept(teamInvitationKind(txRepo), invitationID, actorProfileID)
	})
}

func (s *teamInvitationService) Ignore(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		return request.Ignore(teamInvitationKind(txRepo), invitationID, actorProfileID)
	})
}

func (s *teamInvitationService) Withdraw(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		return request.Withdraw(teamInvitationKind(txRepo), invitationID, actorProfileID)
	})
}
