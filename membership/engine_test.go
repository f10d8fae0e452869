package membership

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"teamdock/apperr"
	"teamdock/models"
)

type stubStore struct {
	nextTeamID  uint
	nextUserID  uint
	teams       map[uint]models.Team
	memberships map[uint][]models.Membership
	users       map[uint]models.User
}

func newStubStore() *stubStore {
	return &stubStore{
		teams:       make(map[uint]models.Team),
		memberships: make(map[uint][]models.Membership),
		users:       make(map[uint]models.User),
	}
}

func (s *stubStore) addUser(name, email string) uint {
	s.nextUserID++
	user := models.User{Email: email, Name: name}
	user.ID = s.nextUserID
	s.users[s.nextUserID] = user
	return s.nextUserID
}

func (s *stubStore) seedTeam(name string, founderID uint, leadIDs, memberIDs []uint) uint {
	s.nextTeamID++
	team := models.Team{
		Name:           name,
		SearchableName: models.SearchableTeamName(name),
		FounderID:      founderID,
	}
	team.ID = s.nextTeamID
	s.teams[s.nextTeamID] = team
	for _, id := range leadIDs {
		s.memberships[team.ID] = append(s.memberships[team.ID], models.Membership{
			TeamID: team.ID, UserID: id, Role: models.RoleLead,
		})
	}
	for _, id := range memberIDs {
		s.memberships[team.ID] = append(s.memberships[team.ID], models.Membership{
			TeamID: team.ID, UserID: id, Role: models.RoleMember,
		})
	}
	return team.ID
}

func (s *stubStore) TeamByID(ctx context.Context, id uint) (*models.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	team.Memberships = append([]models.Membership(nil), s.memberships[id]...)
	return &team, nil
}

func (s *stubStore) TeamByName(ctx context.Context, name string) (*models.Team, error) {
	for id, team := range s.teams {
		if team.Name == name {
			return s.TeamByID(ctx, id)
		}
	}
	return nil, ErrNotFound
}

func (s *stubStore) SearchTeams(ctx context.Context, searchable string) ([]models.Team, error) {
	var teams []models.Team
	for _, team := range s.teams {
		if strings.Contains(team.SearchableName, searchable) {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

func (s *stubStore) TeamsByUser(ctx context.Context, userID uint) ([]models.Team, error) {
	var teams []models.Team
	for id, team := range s.teams {
		for _, m := range s.memberships[id] {
			if m.UserID == userID {
				teams = append(teams, team)
				break
			}
		}
	}
	return teams, nil
}

func (s *stubStore) CreateTeam(ctx context.Context, team *models.Team) error {
	s.nextTeamID++
	team.ID = s.nextTeamID
	s.teams[team.ID] = *team
	return nil
}

func (s *stubStore) SaveTeam(ctx context.Context, team *models.Team) error {
	stored := *team
	stored.Memberships = nil
	s.teams[team.ID] = stored
	return nil
}

func (s *stubStore) DeleteTeam(ctx context.Context, teamID uint) error {
	delete(s.teams, teamID)
	delete(s.memberships, teamID)
	return nil
}

func (s *stubStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *stubStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubStore) UsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *stubStore) UsersByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	var users []models.User
	for _, email := range emails {
		if user, err := s.UserByEmail(ctx, email); err == nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *stubStore) AddMembership(ctx context.Context, teamID, userID uint, role string) error {
	for _, m := range s.memberships[teamID] {
		if m.UserID == userID {
			return nil
		}
	}
	s.memberships[teamID] = append(s.memberships[teamID], models.Membership{
		TeamID: teamID, UserID: userID, Role: role,
	})
	return nil
}

func (s *stubStore) RemoveMembership(ctx context.Context, teamID, userID uint) error {
	rows := s.memberships[teamID][:0]
	for _, m := range s.memberships[teamID] {
		if m.UserID != userID {
			rows = append(rows, m)
		}
	}
	s.memberships[teamID] = rows
	return nil
}

func (s *stubStore) SetMembershipRole(ctx context.Context, teamID, userID uint, role string) error {
	for i, m := range s.memberships[teamID] {
		if m.UserID == userID {
			s.memberships[teamID][i].Role = role
		}
	}
	return nil
}

func (s *stubStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func newTestEngine(store Store) *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(store, logger)
}

func assertAppErr(t *testing.T, err error, code string, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected code %s, got %s", code, appErr.Code)
	}
	if appErr.Status != status {
		t.Errorf("expected status %d, got %d", status, appErr.Status)
	}
}

// checkRoleInvariants verifies that no user holds two roles in a team and
// that the founder holds exactly one lead row.
func checkRoleInvariants(t *testing.T, team *models.Team) {
	t.Helper()
	seen := make(map[uint]string)
	for _, m := range team.Memberships {
		if prev, ok := seen[m.UserID]; ok {
			t.Fatalf("user %d holds both %s and %s in team %d", m.UserID, prev, m.Role, team.ID)
		}
		seen[m.UserID] = m.Role
	}
	if role, ok := seen[team.FounderID]; ok {
		if role != models.RoleLead {
			t.Fatalf("founder %d holds role %s", team.FounderID, role)
		}
	} else {
		t.Fatalf("founder %d has no membership row", team.FounderID)
	}
}

func TestCreateTeam(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	engine := newTestEngine(store)

	team, user, err := engine.Create(context.Background(), "Dream Team", alice)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if team.FounderID != alice {
		t.Errorf("expected founder %d, got %d", alice, team.FounderID)
	}
	if got := team.LeadIDs(); len(got) != 1 || got[0] != alice {
		t.Errorf("expected creator as sole lead, got %v", got)
	}
	if len(team.MemberIDs()) != 0 {
		t.Errorf("expected no members, got %v", team.MemberIDs())
	}
	if team.SearchableName != "dreamteam" {
		t.Errorf("expected searchable name dreamteam, got %q", team.SearchableName)
	}
	if user.ID != alice {
		t.Errorf("expected creator user in response, got %d", user.ID)
	}
	checkRoleInvariants(t, team)
}

func TestCreateTeamEmptyName(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	engine := newTestEngine(store)

	_, _, err := engine.Create(context.Background(), "", alice)
	assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
}

func TestCreateTeamNameConflict(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	engine := newTestEngine(store)

	if _, _, err := engine.Create(context.Background(), "Dream Team", alice); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _, err := engine.Create(context.Background(), "Dream Team", bob)
	assertAppErr(t, err, apperr.CodeEntryConflict, 409)
}

func TestEditTeamRederivesSearchableName(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	teamID := store.seedTeam("Old Name", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	updated, err := engine.Edit(context.Background(), team, "New Team Name")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Name != "New Team Name" {
		t.Errorf("expected renamed team, got %q", updated.Name)
	}
	if updated.SearchableName != "newteamname" {
		t.Errorf("expected searchable name newteamname, got %q", updated.SearchableName)
	}
}

func TestEditTeamNameConflict(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	store.seedTeam("Taken", alice, []uint{alice}, nil)
	teamID := store.seedTeam("Mine", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Edit(context.Background(), team, "Taken")
	assertAppErr(t, err, apperr.CodeEntryConflict, 409)

	// renaming a team to its current name is not a conflict
	team, _ = store.TeamByID(context.Background(), teamID)
	if _, err := engine.Edit(context.Background(), team, "Mine"); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}

func TestAddMembersPerEntryResults(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	carol := store.addUser("Carol", "carol@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	// one resolvable lead, one resolvable member, one unknown address; the
	// unknown one must be reported, not silently skipped
	updated, results, err := engine.AddMembers(context.Background(), team, []MemberEntry{
		{Email: "bob@example.com", IsLead: true},
		{Email: "carol@example.com"},
		{Email: "ghost@example.com"},
	}, alice)
	if err != nil {
		t.Fatalf("add members: %v", err)
	}

	want := map[string]string{
		"bob@example.com":   AddOutcomeAdded,
		"carol@example.com": AddOutcomeAdded,
		"ghost@example.com": AddOutcomeNotFound,
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for _, result := range results {
		if want[result.Email] != result.Status {
			t.Errorf("email %s: expected %s, got %s", result.Email, want[result.Email], result.Status)
		}
	}

	if !updated.IsLead(bob) {
		t.Errorf("expected bob as lead")
	}
	if !updated.IsMember(carol) {
		t.Errorf("expected carol as member")
	}
	checkRoleInvariants(t, updated)
}

func TestAddMembersIdempotent(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, []uint{bob})
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	// re-adding bob, even as a lead, must not duplicate him or change his role
	updated, results, err := engine.AddMembers(context.Background(), team, []MemberEntry{
		{Email: "bob@example.com", IsLead: true},
	}, alice)
	if err != nil {
		t.Fatalf("add members: %v", err)
	}
	if results[0].Status != AddOutcomeAlreadyInTeam {
		t.Errorf("expected already_in_team, got %s", results[0].Status)
	}
	if !updated.IsMember(bob) || updated.IsLead(bob) {
		t.Errorf("expected bob to keep the member role")
	}
	checkRoleInvariants(t, updated)
}

func TestAddMembersSelfInvite(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, _, err := engine.AddMembers(context.Background(), team, []MemberEntry{
		{Email: "alice@example.com"},
	}, alice)
	assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
}

func TestAddMembersInvalidParameter(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, _, err := engine.AddMembers(context.Background(), team, nil, alice)
	assertAppErr(t, err, apperr.CodeInvalidParameter, 422)

	_, _, err = engine.AddMembers(context.Background(), team, []MemberEntry{
		{Email: "nobody@example.com"},
	}, alice)
	assertAppErr(t, err, apperr.CodeInvalidParameter, 422)
}

func TestRemoveMemberGuards(t *testing.T) {
	ctx := context.Background()

	// team {founder: A, leads: [A, B, C], members: [D, E]}
	setup := func() (*stubStore, *Engine, map[string]uint, uint) {
		store := newStubStore()
		ids := map[string]uint{
			"A": store.addUser("A", "a@example.com"),
			"B": store.addUser("B", "b@example.com"),
			"C": store.addUser("C", "c@example.com"),
			"D": store.addUser("D", "d@example.com"),
			"E": store.addUser("E", "e@example.com"),
		}
		teamID := store.seedTeam("Squad", ids["A"],
			[]uint{ids["A"], ids["B"], ids["C"]},
			[]uint{ids["D"], ids["E"]})
		return store, newTestEngine(store), ids, teamID
	}

	t.Run("founder cannot be removed", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, ids["A"], ids["B"])
		assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
	})

	t.Run("founder cannot remove themselves", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, ids["A"], ids["A"])
		assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
	})

	t.Run("lead cannot remove another lead either direction", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, ids["C"], ids["B"])
		assertAppErr(t, err, apperr.CodeUnauthorizedRequest, 422)

		team, _ = store.TeamByID(ctx, teamID)
		_, err = engine.Remove(ctx, team, ids["B"], ids["C"])
		assertAppErr(t, err, apperr.CodeUnauthorizedRequest, 422)
	})

	t.Run("founder can remove a lead", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		updated, err := engine.Remove(ctx, team, ids["B"], ids["A"])
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if updated.BelongsTo(ids["B"]) {
			t.Errorf("expected B out of the team")
		}
		teams, _ := store.TeamsByUser(ctx, ids["B"])
		if len(teams) != 0 {
			t.Errorf("expected B's team reference removed, got %v", teams)
		}
		checkRoleInvariants(t, updated)
	})

	t.Run("lead can remove themselves", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		updated, err := engine.Remove(ctx, team, ids["B"], ids["B"])
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if updated.BelongsTo(ids["B"]) {
			t.Errorf("expected B out of the team")
		}
	})

	t.Run("member can remove themselves", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		updated, err := engine.Remove(ctx, team, ids["D"], ids["D"])
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if updated.BelongsTo(ids["D"]) {
			t.Errorf("expected D out of the team")
		}
	})

	t.Run("member cannot remove another member", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, ids["E"], ids["D"])
		assertAppErr(t, err, apperr.CodeUnauthorizedRequest, 422)
	})

	t.Run("member cannot remove a lead", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, ids["B"], ids["D"])
		assertAppErr(t, err, apperr.CodeUnauthorizedRequest, 422)
	})

	t.Run("lead can remove a member", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		team, _ := store.TeamByID(ctx, teamID)
		updated, err := engine.Remove(ctx, team, ids["D"], ids["B"])
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if updated.BelongsTo(ids["D"]) {
			t.Errorf("expected D out of the team")
		}
	})

	t.Run("target not in team", func(t *testing.T) {
		store, engine, ids, teamID := setup()
		outsider := store.addUser("F", "f@example.com")
		team, _ := store.TeamByID(ctx, teamID)
		_, err := engine.Remove(ctx, team, outsider, ids["A"])
		assertAppErr(t, err, apperr.CodeNoMatchingEntity, 404)
	})
}

func TestRemoveSoleFounderLead(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	teamID := store.seedTeam("Solo", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Remove(context.Background(), team, alice, alice)
	assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
}

func TestPromoteMember(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, []uint{bob})
	engine := newTestEngine(store)

	team, _ := store.TeamByID(ctx, teamID)
	updated, err := engine.Promote(ctx, team, bob, alice)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !updated.IsLead(bob) || updated.IsMember(bob) {
		t.Errorf("expected bob moved to leads")
	}
	checkRoleInvariants(t, updated)

	// promoting an existing lead is rejected
	team, _ = store.TeamByID(ctx, teamID)
	_, err = engine.Promote(ctx, team, bob, alice)
	assertAppErr(t, err, apperr.CodeInvalidOperation, 422)
}

func TestPromoteNonMember(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	outsider := store.addUser("Oscar", "oscar@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Promote(context.Background(), team, outsider, alice)
	assertAppErr(t, err, apperr.CodeInvalidEntity, 422)
}

func TestDemoteLead(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice, bob}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(ctx, teamID)
	updated, err := engine.Demote(ctx, team, bob, alice)
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if !updated.IsMember(bob) || updated.IsLead(bob) {
		t.Errorf("expected bob moved to members")
	}
	checkRoleInvariants(t, updated)
}

func TestDemoteSoleLeadSelf(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	// bob founded nothing; alice is sole lead but not the only teammate
	teamID := store.seedTeam("Squad", alice, []uint{alice}, []uint{bob})
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Demote(context.Background(), team, alice, alice)
	assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
}

func TestDemoteFounder(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice, bob}, nil)
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Demote(context.Background(), team, alice, bob)
	assertAppErr(t, err, apperr.CodeInvalidOperation, 403)
}

func TestDemoteNonLead(t *testing.T) {
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, []uint{bob})
	engine := newTestEngine(store)

	team, _ := store.TeamByID(context.Background(), teamID)
	_, err := engine.Demote(context.Background(), team, bob, alice)
	assertAppErr(t, err, apperr.CodeInvalidEntity, 422)
}

func TestDeleteTeamCascades(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	teamID := store.seedTeam("Squad", alice, []uint{alice}, []uint{bob})
	engine := newTestEngine(store)

	team, _ := store.TeamByID(ctx, teamID)
	if err := engine.Delete(ctx, team); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.TeamByID(ctx, teamID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted team lookup to fail, got %v", err)
	}
	for _, id := range []uint{alice, bob} {
		teams, _ := store.TeamsByUser(ctx, id)
		if len(teams) != 0 {
			t.Errorf("expected user %d to hold no team references, got %v", id, teams)
		}
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	store.seedTeam("Dream Team", alice, []uint{alice}, nil)
	store.seedTeam("Day Dreamers", bob, []uint{bob}, nil)
	store.seedTeam("Nightcrew", bob, []uint{bob}, nil)
	engine := newTestEngine(store)

	t.Run("by name", func(t *testing.T) {
		teams, err := engine.Search(ctx, "dream", "")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(teams) != 2 {
			t.Errorf("expected 2 teams, got %d", len(teams))
		}
	})

	t.Run("by email", func(t *testing.T) {
		teams, err := engine.Search(ctx, "", "bob@example.com")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(teams) != 2 {
			t.Errorf("expected 2 teams, got %d", len(teams))
		}
	})

	t.Run("by name and email", func(t *testing.T) {
		teams, err := engine.Search(ctx, "Dream", "bob@example.com")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(teams) != 1 || teams[0].Name != "Day Dreamers" {
			t.Errorf("expected only Day Dreamers, got %v", teams)
		}
	})

	t.Run("neither", func(t *testing.T) {
		_, err := engine.Search(ctx, "", "")
		assertAppErr(t, err, apperr.CodeInvalidRequest, 422)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := engine.Search(ctx, "", "ghost@example.com")
		assertAppErr(t, err, apperr.CodeNoEntryInDB, 404)
	})
}

// TestOperationSequenceInvariants drives a realistic sequence of membership
// changes and checks the role invariants after every step.
func TestOperationSequenceInvariants(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	alice := store.addUser("Alice", "alice@example.com")
	bob := store.addUser("Bob", "bob@example.com")
	carol := store.addUser("Carol", "carol@example.com")
	engine := newTestEngine(store)

	team, _, err := engine.Create(ctx, "Rotation", alice)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	checkRoleInvariants(t, team)

	team, _, err = engine.AddMembers(ctx, team, []MemberEntry{
		{Email: "bob@example.com"},
		{Email: "carol@example.com"},
	}, alice)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	checkRoleInvariants(t, team)

	team, err = engine.Promote(ctx, team, bob, alice)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	checkRoleInvariants(t, team)

	team, err = engine.Demote(ctx, team, bob, alice)
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	checkRoleInvariants(t, team)

	team, err = engine.Remove(ctx, team, carol, alice)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	checkRoleInvariants(t, team)

	// retrying the completed removal reports the absent state, not success
	_, err = engine.Remove(ctx, team, carol, alice)
	assertAppErr(t, err, apperr.CodeNoMatchingEntity, 404)

	// retrying a completed demotion likewise fails as "not a lead"
	_, err = engine.Demote(ctx, team, bob, alice)
	assertAppErr(t, err, apperr.CodeInvalidEntity, 422)
}
