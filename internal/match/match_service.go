package match

import (
	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

const defaultTeamSize = 7

// MatchInvitationService manages pending challenges between teams. Both ends
// are represented by their admins: any admin of the challenged team can
// accept, any admin of the challenging team can withdraw.
type MatchInvitationService interface {
	Create(actorProfileID uint, req *CreateMatchInvitationRequest) (*MatchInvitation, error)
	Get(invitationID uint) (*MatchInvitation, error)
	List(profileID uint, direction request.Direction) ([]MatchInvitation, error)
	Accept(invitationID, actorProfileID uint) error
	Ignore(invitationID, actorProfileID uint) error
	Withdraw(invitationID, actorProfileID uint) error
}

type matchInvitationService struct {
	repo MatchRepository
}

func NewMatchInvitationService(repo MatchRepository) MatchInvitationService {
	return &matchInvitationService{repo: repo}
}

// matchInvitationKind binds match invitations to the request engine.
// Accepting turns the invitation into a Match in the same transaction.
func matchInvitationKind(repo MatchRepository) request.Kind {
	return request.Kind{
		Name: "match invitation",
		Fetch: func(id uint) (request.Pending, error) {
			inv, err := repo.GetInvitationByIDForUpdate(id)
			if err != nil || inv == nil {
				return nil, err
			}
			return inv, nil
		},
		Recipient: func(p request.Pending, actorID uint) (bool, error) {
			return repo.IsTeamAdmin(p.(*MatchInvitation).ToTeamID, actorID)
		},
		Sender: func(p request.Pending, actorID uint) (bool, error) {
			return repo.IsTeamAdmin(p.(*MatchInvitation).FromTeamID, actorID)
		},
		OnAccept: func(p request.Pending) error {
			inv := p.(*MatchInvitation)
			return repo.CreateMatch(&Match{
				HomeTeamID: inv.FromTeamID,
				AwayTeamID: inv.ToTeamID,
				TeamSize:   inv.TeamSize,
				Location:   inv.Location,
				KickoffAt:  inv.KickoffAt,
			})
		},
		Discard: func(p request.Pending) error {
			return repo.DeleteInvitation(p.RequestID())
		},
	}
}

func (s *matchInvitationService) Create(actorProfileID uint, req *CreateMatchInvitationRequest) (*MatchInvitation, error) {
	var created *MatchInvitation
	err := s.repo.WithTransaction(func(txRepo MatchRepository) error {
		if req.FromTeamID == req.ToTeamID {
			return apperrors.Validation("cannot send a match invitation to the same team")
		}
		for _, teamID := range []uint{req.FromTeamID, req.ToTeamID} {
			exists, err := txRepo.TeamExists(teamID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NotFound("team not found")
			}
		}
		isMember, err := txRepo.IsTeamMember(req.FromTeamID, actorProfileID)
		if err != nil {
			return err
		}
		if !isMember {
			return apperrors.Validation("cannot send a match invitation from a team you are not a member of")
		}
		isAdmin, err := txRepo.IsTeamAdmin(req.FromTeamID, actorProfileID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return apperrors.Validation("only team admins can send match invitations")
		}
		dup, err := txRepo.GetPendingInvitation(req.FromTeamID, req.ToTeamID)
		if err != nil {
			return err
		}
		if dup != nil {
			return apperrors.Validation("match invitation already sent to this team")
		}

		teamSize := req.TeamSize
		if teamSize == 0 {
			teamSize = defaultTeamSize
		}
		inv := &MatchInvitation{
			FromTeamID: req.FromTeamID,
			ToTeamID:   req.ToTeamID,
			TeamSize:   teamSize,
			Location:   req.Location,
			KickoffAt:  req.KickoffAt,
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

func (s *matchInvitationService) Get(invitationID uint) (*MatchInvitation, error) {
	inv, err := s.repo.GetInvitationByID(invitationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperrors.NotFound("match invitation not found")
	}
	return inv, nil
}

func (s *matchInvitationService) List(profileID uint, direction request.Direction) ([]MatchInvitation, error) {
	return s.repo.ListInvitations(profileID, direction)
}

func (s *matchInvitationService) Accept(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo MatchRepository) error {
		return request.Accept(matchInvitationKind(txRepo), invitationID, actorProfileID)
	})
}

func (s *matchInvitationService) Ignore(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo MatchRepository) error {
		return request.Ignore(matchInvitationKind(txRepo), invitationID, actorProfileID)
	})
}

func (s *matchInvitationService) Withdraw(invitationID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo MatchRepository) error {
		return request.Withdraw(matchInvitationKind(txRepo), invitationID, actorProfileID)
	})
}

// MatchService serves realized matches, availability votes and stat lines.
type MatchService interface {
	Get(matchID uint) (*Match, error)
	List(page, limit int) ([]Match, int64, error)
	CastVote(matchID, profileID uint, response string) (*MatchVote, error)
	ListVotes(matchID uint) ([]MatchVote, error)
	RecordStats(matchID, actorProfileID uint, req *RecordStatsRequest) (*MatchStats, error)
	ListStats(matchID uint) ([]MatchStats, error)
}

type matchService struct {
	repo MatchRepository
}

func NewMatchService(repo MatchRepository) MatchService {
	return &matchService{repo: repo}
}

func (s *matchService) Get(matchID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NotFound("match not found")
	}
	return m, nil
}

func (s *matchService) List(page, limit int) ([]Match, int64, error) {
	return s.repo.ListMatches(page, limit)
}

// CastVote upserts the caller's availability for a match. A second vote by
// the same profile overwrites the stored response.
func (s *matchService) CastVote(matchID, profileID uint, response string) (*MatchVote, error) {
	switch response {
	case VoteAccepted, VoteRejected, VoteMaybe:
	default:
		return nil, apperrors.Validation("invalid vote response %q", response)
	}

	var vote *MatchVote
	err := s.repo.WithTransaction(func(txRepo MatchRepository) error {
		m, err := txRepo.GetMatchByID(matchID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperrors.NotFound("match not found")
		}
		v := &MatchVote{MatchID: matchID, ProfileID: profileID, Response: response}
		if err := txRepo.SaveVote(v); err != nil {
			return err
		}
		vote = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *matchService) ListVotes(matchID uint) ([]MatchVote, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NotFound("match not found")
	}
	return s.repo.ListVotes(matchID)
}

// RecordStats stores one team's stat line for a match. Only admins of the
// team the line belongs to may write it, and the team must have played the
// match.
func (s *matchService) RecordStats(matchID, actorProfileID uint, req *RecordStatsRequest) (*MatchStats, error) {
	var stats *MatchStats
	err := s.repo.WithTransaction(func(txRepo MatchRepository) error {
		m, err := txRepo.GetMatchByID(matchID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperrors.NotFound("match not found")
		}
		if req.TeamID != m.HomeTeamID && req.TeamID != m.AwayTeamID {
			return apperrors.Validation("this team did not play in the match")
		}
		isAdmin, err := txRepo.IsTeamAdmin(req.TeamID, actorProfileID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return apperrors.Forbidden("only team admins can record match stats")
		}
		line := &MatchStats{
			MatchID:    matchID,
			TeamID:     req.TeamID,
			Score:      req.Score,
			Shooting:   req.Shooting,
			Attacks:    req.Attacks,
			Possession: req.Possession,
			Fouls:      req.Fouls,
			Corners:    req.Corners,
		}
		if err := txRepo.SaveStats(line); err != nil {
			return err
		}
		stats = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *matchService) ListStats(matchID uint) ([]MatchStats, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NotFound("match not found")
	}
	return s.repo.ListStats(matchID)
}
