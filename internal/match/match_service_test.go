package match

import (
	"sort"
	"testing"
	"time"

	"github.com/sidelines-app/sidelines/internal/request"
	"github.com/sidelines-app/sidelines/pkg/apperrors"
)

// fakeMatchRepo is an in-memory MatchRepository for service tests. Teams and
// their rosters are seeded directly since this package only reads them.
type fakeMatchRepo struct {
	nextInvID   uint
	nextMatchID uint
	nextVoteID  uint
	invitations map[uint]*MatchInvitation
	matches     map[uint]*Match
	votes       map[[2]uint]*MatchVote
	stats       map[[2]uint]*MatchStats
	teams       map[uint]bool
	members     map[[2]uint]bool
	admins      map[[2]uint]bool
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		invitations: make(map[uint]*MatchInvitation),
		matches:     make(map[uint]*Match),
		votes:       make(map[[2]uint]*MatchVote),
		stats:       make(map[[2]uint]*MatchStats),
		teams:       make(map[uint]bool),
		members:     make(map[[2]uint]bool),
		admins:      make(map[[2]uint]bool),
	}
}

func (f *fakeMatchRepo) seedTeam(teamID uint, adminID uint, memberIDs ...uint) {
	f.teams[teamID] = true
	f.members[[2]uint{teamID, adminID}] = true
	f.admins[[2]uint{teamID, adminID}] = true
	for _, id := range memberIDs {
		f.members[[2]uint{teamID, id}] = true
	}
}

func (f *fakeMatchRepo) CreateInvitation(inv *MatchInvitation) error {
	f.nextInvID++
	inv.ID = f.nextInvID
	f.invitations[inv.ID] = inv
	return nil
}

func (f *fakeMatchRepo) GetInvitationByID(id uint) (*MatchInvitation, error) {
	return f.invitations[id], nil
}

func (f *fakeMatchRepo) GetInvitationByIDForUpdate(id uint) (*MatchInvitation, error) {
	return f.invitations[id], nil
}

func (f *fakeMatchRepo) GetPendingInvitation(fromTeamID, toTeamID uint) (*MatchInvitation, error) {
	for _, inv := range f.invitations {
		if inv.FromTeamID == fromTeamID && inv.ToTeamID == toTeamID {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchRepo) ListInvitations(profileID uint, direction request.Direction) ([]MatchInvitation, error) {
	var out []MatchInvitation
	for _, inv := range f.invitations {
		teamID := inv.FromTeamID
		if direction == request.DirectionReceived {
			teamID = inv.ToTeamID
		}
		if f.admins[[2]uint{teamID, profileID}] {
			out = append(out, *inv)
		}
	}
	// Oldest first, like the created_at ordering of the real repository.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMatchRepo) DeleteInvitation(id uint) error {
	delete(f.invitations, id)
	return nil
}

func (f *fakeMatchRepo) CreateMatch(m *Match) error {
	f.nextMatchID++
	m.ID = f.nextMatchID
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetMatchByID(id uint) (*Match, error) {
	return f.matches[id], nil
}

func (f *fakeMatchRepo) ListMatches(page, limit int) ([]Match, int64, error) {
	var out []Match
	for _, m := range f.matches {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMatchRepo) SaveVote(vote *MatchVote) error {
	key := [2]uint{vote.MatchID, vote.ProfileID}
	if existing, ok := f.votes[key]; ok {
		existing.Response = vote.Response
		vote.ID = existing.ID
		return nil
	}
	f.nextVoteID++
	vote.ID = f.nextVoteID
	f.votes[key] = vote
	return nil
}

func (f *fakeMatchRepo) ListVotes(matchID uint) ([]MatchVote, error) {
	var out []MatchVote
	for key, v := range f.votes {
		if key[0] == matchID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) SaveStats(stats *MatchStats) error {
	key := [2]uint{stats.MatchID, stats.TeamID}
	if existing, ok := f.stats[key]; ok {
		stats.ID = existing.ID
	}
	f.stats[key] = stats
	return nil
}

func (f *fakeMatchRepo) ListStats(matchID uint) ([]MatchStats, error) {
	var out []MatchStats
	for key, s := range f.stats {
		if key[0] == matchID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) TeamExists(teamID uint) (bool, error) {
	return f.teams[teamID], nil
}

func (f *fakeMatchRepo) IsTeamMember(teamID, profileID uint) (bool, error) {
	return f.members[[2]uint{teamID, profileID}], nil
}

func (f *fakeMatchRepo) IsTeamAdmin(teamID, profileID uint) (bool, error) {
	return f.admins[[2]uint{teamID, profileID}], nil
}

func (f *fakeMatchRepo) WithTransaction(txFunc func(MatchRepository) error) error {
	return txFunc(f)
}

func kickoff() time.Time {
	return time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC)
}

func challenge(toTeamID uint) *CreateMatchInvitationRequest {
	return &CreateMatchInvitationRequest{
		FromTeamID: 1,
		ToTeamID:   toTeamID,
		TeamSize:   5,
		Location:   "Hackney Marshes",
		KickoffAt:  kickoff(),
	}
}

func TestCreateMatchInvitationValidation(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10, 11)
	repo.seedTeam(2, 20)
	svc := NewMatchInvitationService(repo)

	tests := []struct {
		name     string
		actor    uint
		req      *CreateMatchInvitationRequest
		wantKind apperrors.Kind
	}{
		{"same team", 10, challenge(1), apperrors.KindValidation},
		{"missing opponent", 10, challenge(99), apperrors.KindNotFound},
		{"sender not on team", 20, challenge(2), apperrors.KindValidation},
		{"sender not admin", 11, challenge(2), apperrors.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.actor, tt.req)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !apperrors.IsKind(err, tt.wantKind) {
				t.Fatalf("wrong error kind: %v", err)
			}
		})
	}

	if _, err := svc.Create(10, challenge(2)); err != nil {
		t.Fatalf("valid challenge: %v", err)
	}
	if _, err := svc.Create(10, challenge(2)); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("duplicate challenge: want validation, got %v", err)
	}
}

func TestCreateMatchInvitationDefaultsTeamSize(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10)
	repo.seedTeam(2, 20)
	svc := NewMatchInvitationService(repo)

	req := challenge(2)
	req.TeamSize = 0
	inv, err := svc.Create(10, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.TeamSize != defaultTeamSize {
		t.Fatalf("team size: got %d want %d", inv.TeamSize, defaultTeamSize)
	}
}

func TestAcceptMatchInvitationCreatesOneMatch(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10)
	repo.seedTeam(2, 20, 21)
	svc := NewMatchInvitationService(repo)

	inv, err := svc.Create(10, challenge(2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Only admins of the challenged team may accept.
	if err := svc.Accept(inv.ID, 21); !apperrors.IsKind(err, apperrors.KindForbidden) {
		t.Fatalf("accept by plain member: want forbidden, got %v", err)
	}
	if err := svc.Accept(inv.ID, 10); !apperrors.IsKind(err, apperrors.KindForbidden) {
		t.Fatalf("accept by challenger: want forbidden, got %v", err)
	}

	if err := svc.Accept(inv.ID, 20); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(repo.matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(repo.matches))
	}
	var created *Match
	for _, m := range repo.matches {
		created = m
	}
	if created.HomeTeamID != 1 || created.AwayTeamID != 2 {
		t.Fatalf("match team pair wrong: %+v", created)
	}
	if created.TeamSize != 5 || created.Location != "Hackney Marshes" || !created.KickoffAt.Equal(kickoff()) {
		t.Fatalf("match parameters not carried over: %+v", created)
	}
	if len(repo.invitations) != 0 {
		t.Fatalf("accepted invitation should be deleted")
	}

	// The row is gone, so a retried accept cannot create a second match.
	if err := svc.Accept(inv.ID, 20); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("second accept: want not-found, got %v", err)
	}
	if len(repo.matches) != 1 {
		t.Fatalf("second accept must not create another match")
	}
}

func TestListMatchInvitationsOldestFirst(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10)
	for _, teamID := range []uint{4, 2, 3} {
		repo.seedTeam(teamID, teamID*10)
	}
	svc := NewMatchInvitationService(repo)

	for _, teamID := range []uint{4, 2, 3} {
		req := challenge(1)
		req.FromTeamID = teamID
		if _, err := svc.Create(teamID*10, req); err != nil {
			t.Fatalf("challenge from team %d: %v", teamID, err)
		}
	}

	received, err := svc.List(10, request.DirectionReceived)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(received) != 3 {
		t.Fatalf("expected 3 pending challenges, got %d", len(received))
	}
	for i := 1; i < len(received); i++ {
		if received[i-1].ID >= received[i].ID {
			t.Fatalf("challenges out of creation order: %d before %d", received[i-1].ID, received[i].ID)
		}
	}
}

func TestWithdrawMatchInvitation(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10)
	repo.seedTeam(2, 20)
	svc := NewMatchInvitationService(repo)

	inv, err := svc.Create(10, challenge(2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Withdraw(inv.ID, 20); !apperrors.IsKind(err, apperrors.KindForbidden) {
		t.Fatalf("withdraw by challenged admin: want forbidden, got %v", err)
	}
	if err := svc.Withdraw(inv.ID, 10); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if len(repo.invitations) != 0 {
		t.Fatalf("withdrawn invitation should be deleted")
	}
}

func TestCastVoteUpserts(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewMatchService(repo)
	repo.matches[1] = &Match{HomeTeamID: 1, AwayTeamID: 2}

	if _, err := svc.CastVote(99, 10, VoteAccepted); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("vote on missing match: want not-found, got %v", err)
	}
	if _, err := svc.CastVote(1, 10, "unsure"); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("invalid response: want validation, got %v", err)
	}

	if _, err := svc.CastVote(1, 10, VoteAccepted); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if _, err := svc.CastVote(1, 10, VoteRejected); err != nil {
		t.Fatalf("second vote: %v", err)
	}

	votes, err := svc.ListVotes(1)
	if err != nil {
		t.Fatalf("ListVotes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("re-vote must overwrite, got %d rows", len(votes))
	}
	if votes[0].Response != VoteRejected {
		t.Fatalf("response: got %q want %q", votes[0].Response, VoteRejected)
	}
}

func TestRecordStats(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.seedTeam(1, 10)
	repo.seedTeam(2, 20)
	repo.seedTeam(3, 30)
	svc := NewMatchService(repo)
	repo.matches[1] = &Match{HomeTeamID: 1, AwayTeamID: 2}

	line := &RecordStatsRequest{TeamID: 1, Score: 3, Shooting: 11, Attacks: 24, Possession: 57.5, Fouls: 2, Corners: 6}

	if _, err := svc.RecordStats(99, 10, line); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("missing match: want not-found, got %v", err)
	}
	if _, err := svc.RecordStats(1, 30, &RecordStatsRequest{TeamID: 3}); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("uninvolved team: want validation, got %v", err)
	}
	if _, err := svc.RecordStats(1, 20, line); !apperrors.IsKind(err, apperrors.KindForbidden) {
		t.Fatalf("admin of the other team: want forbidden, got %v", err)
	}

	if _, err := svc.RecordStats(1, 10, line); err != nil {
		t.Fatalf("RecordStats: %v", err)
	}
	// Overwriting the same team's line keeps a single row.
	line.Score = 4
	if _, err := svc.RecordStats(1, 10, line); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	stats, err := svc.ListStats(1)
	if err != nil {
		t.Fatalf("ListStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one stat line, got %d", len(stats))
	}
	if stats[0].Score != 4 {
		t.Fatalf("score: got %d want 4", stats[0].Score)
	}
}
