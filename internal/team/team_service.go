package team

import (
	"math/rand"

	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

// Policy carries the tunable parts of team administration.
type Policy struct {
	// AllowLastAdminDemote permits demoting the only admin of a team,
	// leaving the team without admins until someone is promoted.
	AllowLastAdminDemote bool
}

// TeamService owns team lifecycle and roster administration. Every
// mutation runs inside a single transaction so roster invariants hold
// under concurrent requests.
type TeamService interface {
	Create(name string, creatorProfileID uint) (*Team, error)
	Get(teamID uint) (*Team, error)
	List(page, limit int) ([]Team, int64, error)
	Update(teamID, actorProfileID uint, req *UpdateTeamRequest) (*Team, error)
	Delete(teamID, actorProfileID uint) error

	ListMembers(teamID uint) ([]TeamMember, error)
	ListAdmins(teamID uint) ([]TeamMember, error)
	Promote(teamID, actorProfileID, memberProfileID uint) error
	Demote(teamID, actorProfileID, memberProfileID uint) error
	RemoveMember(teamID, actorProfileID, memberProfileID uint) error
	Leave(teamID, actorProfileID uint) error
}

type teamService struct {
	repo   TeamRepository
	policy Policy
}

func NewTeamService(repo TeamRepository, policy Policy) TeamService {
	return &teamService{repo: repo, policy: policy}
}

func (s *teamService) Create(name string, creatorProfileID uint) (*Team, error) {
	var created *Team
	err := s.repo.WithTransaction(func(txRepo TeamRepository) error {
		team := &Team{Name: name}
		if err := txRepo.CreateTeam(team); err != nil {
			return err
		}
		member := &TeamMember{TeamID: team.ID, ProfileID: creatorProfileID, IsAdmin: true}
		if err := txRepo.AddMember(member); err != nil {
			return err
		}
		created = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *teamService) Get(teamID uint) (*Team, error) {
	team, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("team not found")
	}
	return team, nil
}

func (s *teamService) List(page, limit int) ([]Team, int64, error) {
	return s.repo.GetAllTeams(page, limit)
}

func (s *teamService) Update(teamID, actorProfileID uint, req *UpdateTeamRequest) (*Team, error) {
	var updated *Team
	err := s.repo.WithTransaction(func(txRepo TeamRepository) error {
		team, err := s.requireTeam(txRepo, teamID)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(txRepo, teamID, actorProfileID); err != nil {
			return err
		}
		if req.Name != "" {
			team.Name = req.Name
		}
		if err := txRepo.UpdateTeam(team); err != nil {
			return err
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *teamService) Delete(teamID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		if _, err := s.requireTeam(txRepo, teamID); err != nil {
			return err
		}
		if err := s.requireAdmin(txRepo, teamID, actorProfileID); err != nil {
			return err
		}
		return txRepo.DeleteTeam(teamID)
	})
}

func (s *teamService) ListMembers(teamID uint) ([]TeamMember, error) {
	team, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("team not found")
	}
	return s.repo.ListMembers(teamID)
}

func (s *teamService) ListAdmins(teamID uint) ([]TeamMember, error) {
	team, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("team not found")
	}
	return s.repo.ListAdmins(teamID)
}

func (s *teamService) Promote(teamID, actorProfileID, memberProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		member, err := s.requireAdminOverMember(txRepo, teamID, actorProfileID, memberProfileID)
		if err != nil {
			return err
		}
		if member.IsAdmin {
			return nil
		}
		member.IsAdmin = true
		return txRepo.UpdateMember(member)
	})
}

func (s *teamService) Demote(teamID, actorProfileID, memberProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		member, err := s.requireAdminOverMember(txRepo, teamID, actorProfileID, memberProfileID)
		if err != nil {
			return err
		}
		if !member.IsAdmin {
			return apperrors.Validation("this member is not an admin")
		}
		if !s.policy.AllowLastAdminDemote {
			admins, err := txRepo.CountAdmins(teamID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return apperrors.Validation("cannot demote the last admin of the team")
			}
		}
		member.IsAdmin = false
		return txRepo.UpdateMember(member)
	})
}

func (s *teamService) RemoveMember(teamID, actorProfileID, memberProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		member, err := s.requireAdminOverMember(txRepo, teamID, actorProfileID, memberProfileID)
		if err != nil {
			return err
		}
		if actorProfileID == memberProfileID {
			return apperrors.Forbidden("you cannot remove yourself, leave the team instead")
		}
		if err := txRepo.RemoveMember(member.TeamID, member.ProfileID); err != nil {
			return err
		}
		return s.healRoster(txRepo, teamID)
	})
}

func (s *teamService) Leave(teamID, actorProfileID uint) error {
	return s.repo.WithTransaction(func(txRepo TeamRepository) error {
		if _, err := s.requireTeam(txRepo, teamID); err != nil {
			return err
		}
		member, err := txRepo.GetMember(teamID, actorProfileID)
		if err != nil {
			return err
		}
		if member == nil {
			return apperrors.Validation("you are not a member of this team")
		}
		members, err := txRepo.CountMembers(teamID)
		if err != nil {
			return err
		}
		if member.IsAdmin && members > 1 {
			admins, err := txRepo.CountAdmins(teamID)
			if err != nil {
				return err
			}
			if admins == 1 {
				return apperrors.Forbidden("promote another admin before leaving the team")
			}
		}
		if err := txRepo.RemoveMember(teamID, actorProfileID); err != nil {
			return err
		}
		return s.healRoster(txRepo, teamID)
	})
}

// healRoster restores roster invariants after a member left or was
// removed: an empty team is deleted, and a team left without admins
// gets a randomly chosen member promoted.
func (s *teamService) healRoster(txRepo TeamRepository, teamID uint) error {
	members, err := txRepo.ListMembers(teamID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return txRepo.DeleteTeam(teamID)
	}
	admins, err := txRepo.CountAdmins(teamID)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}
	pick := members[rand.Intn(len(members))]
	pick.IsAdmin = true
	return txRepo.UpdateMember(&pick)
}

func (s *teamService) requireTeam(txRepo TeamRepository, teamID uint) (*Team, error) {
	team, err := txRepo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("team not found")
	}
	return team, nil
}

func (s *teamService) requireAdmin(txRepo TeamRepository, teamID, profileID uint) error {
	isAdmin, err := txRepo.IsAdmin(teamID, profileID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.Forbidden("only team admins can do this")
	}
	return nil
}

// requireAdminOverMember checks the team exists, the actor is one of its
// admins and the target is on the roster. The actor may target themselves;
// remove guards against that separately.
func (s *teamService) requireAdminOverMember(txRepo TeamRepository, teamID, actorProfileID, memberProfileID uint) (*TeamMember, error) {
	if _, err := s.requireTeam(txRepo, teamID); err != nil {
		return nil, err
	}
	if err := s.requireAdmin(txRepo, teamID, actorProfileID); err != nil {
		return nil, err
	}
	member, err := txRepo.GetMember(teamID, memberProfileID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperrors.Validation("this user is not a member of the team")
	}
	return member, nil
}
