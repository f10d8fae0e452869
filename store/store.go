// Package store provides the GORM-backed implementation of the membership
// store against Postgres.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"teamdock/membership"
	"teamdock/models"
)

type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm connection as a membership.Store.
func New(db *gorm.DB) membership.Store {
	return &gormStore{db: db}
}

func (s *gormStore) TeamByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).Preload("Memberships").First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *gormStore) TeamByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).Preload("Memberships").Where("name = ?", name).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *gormStore) SearchTeams(ctx context.Context, searchable string) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("searchable_name LIKE ?", "%"+searchable+"%").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *gormStore) TeamsByUser(ctx context.Context, userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.team_id = teams.id").
		Where("memberships.user_id = ?", userID).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *gormStore) CreateTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Create(team).Error
}

func (s *gormStore) SaveTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Omit("Memberships", "Projects").Save(team).Error
}

func (s *gormStore) DeleteTeam(ctx context.Context, teamID uint) error {
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&models.Membership{}).Error
	if err != nil {
		return err
	}
	// hard delete so the unique team name frees up immediately
	return s.db.WithContext(ctx).Unscoped().Delete(&models.Team{}, teamID).Error
}

func (s *gormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) UsersByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	var users []models.User
	if len(emails) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("email IN ?", emails).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) AddMembership(ctx context.Context, teamID, userID uint, role string) error {
	var existing models.Membership
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&existing).Error
	if err == nil {
		// already present; the unique index backs this up under races
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.WithContext(ctx).Create(&models.Membership{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}).Error
}

func (s *gormStore) RemoveMembership(ctx context.Context, teamID, userID uint) error {
	return s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.Membership{}).Error
}

func (s *gormStore) SetMembershipRole(ctx context.Context, teamID, userID uint, role string) error {
	return s.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("role", role).Error
}

func (s *gormStore) InTx(ctx context.Context, fn func(membership.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
