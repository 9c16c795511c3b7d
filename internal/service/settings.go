package service

import (
	"strings"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

// MasterService is CRUD over one settings table. inUse, when set, guards
// deletion of rows other records still point at.
type MasterService[T any, PT repository.MasterPtr[T]] struct {
	table *repository.MasterTable[T, PT]
	inUse func(id int) int
	log   *zap.Logger
}

func newMasterService[T any, PT repository.MasterPtr[T]](table *repository.MasterTable[T, PT], inUse func(id int) int, log *zap.Logger) *MasterService[T, PT] {
	return &MasterService[T, PT]{table: table, inUse: inUse, log: log}
}

// List returns the rows in display order.
func (m *MasterService[T, PT]) List() []T {
	return m.table.Ordered()
}

func (m *MasterService[T, PT]) Get(id int) (T, bool) {
	return m.table.GetByID(id)
}

func (m *MasterService[T, PT]) GetByCode(code string) (T, bool) {
	return m.table.GetByCode(code)
}

// Create stores a new row. Codes are unique ignoring case.
func (m *MasterService[T, PT]) Create(rec T) (T, error) {
	created, err := m.table.Create(rec)
	if err != nil {
		return created, err
	}
	p := PT(&created)
	m.log.Info("setting created", zap.String("table", m.table.Name()), zap.Int("id", p.GetID()),
		zap.String("code", p.GetCode()))
	return created, nil
}

// Update applies the shared columns of req.
func (m *MasterService[T, PT]) Update(id int, req models.MasterRequest) (T, bool, error) {
	return m.UpdateWith(id, func(rec *T) {
		req.Apply(PT(rec).Master())
	})
}

// UpdateWith applies an arbitrary patch, for table specific columns.
func (m *MasterService[T, PT]) UpdateWith(id int, patch func(*T)) (T, bool, error) {
	rec, ok, err := m.table.Update(id, patch)
	if err == nil && ok {
		m.log.Info("setting updated", zap.String("table", m.table.Name()), zap.Int("id", id))
	}
	return rec, ok, err
}

// Delete removes a row nothing refers to.
func (m *MasterService[T, PT]) Delete(id int) (bool, error) {
	rec, ok := m.table.GetByID(id)
	if !ok {
		return false, nil
	}
	if m.inUse != nil {
		if n := m.inUse(id); n > 0 {
			return false, errors.Forbiddenf("%s %q is used by %d records", m.table.Name(), PT(&rec).GetCode(), n)
		}
	}
	if !m.table.Delete(id) {
		return false, nil
	}
	m.log.Info("setting deleted", zap.String("table", m.table.Name()), zap.Int("id", id))
	return true, nil
}

// SettingsService exposes every reference table plus the user directory.
type SettingsService struct {
	AssetTypes          *MasterService[models.AssetType, *models.AssetType]
	Statuses            *MasterService[models.StatusMaster, *models.StatusMaster]
	Locations           *MasterService[models.Location, *models.Location]
	Departments         *MasterService[models.Department, *models.Department]
	DepreciationMethods *MasterService[models.DepreciationMethod, *models.DepreciationMethod]

	settings *repository.SettingsRepository
	log      *zap.Logger
}

func NewSettingsService(settings *repository.SettingsRepository, assets *repository.AssetRepository, log *zap.Logger) *SettingsService {
	countAssets := func(pred func(models.Asset) bool) int {
		return len(assets.Find(pred))
	}
	return &SettingsService{
		AssetTypes: newMasterService(settings.AssetTypes, func(id int) int {
			return countAssets(func(a models.Asset) bool { return a.TypeID == id })
		}, log),
		Statuses: newMasterService(settings.Statuses, func(id int) int {
			return countAssets(func(a models.Asset) bool { return a.StatusID == id })
		}, log),
		Locations: newMasterService(settings.Locations, func(id int) int {
			return countAssets(func(a models.Asset) bool { return a.LocationID == id })
		}, log),
		Departments: newMasterService(settings.Departments, func(id int) int {
			users := len(settings.Users.Find(func(u models.User) bool { return u.DepartmentID == id }))
			return users + countAssets(func(a models.Asset) bool { return a.DepartmentID == id })
		}, log),
		DepreciationMethods: newMasterService(settings.DepreciationMethods, nil, log),
		settings:            settings,
		log:                 log,
	}
}

// GetAllSettings returns every table in display order.
func (s *SettingsService) GetAllSettings() models.AllSettings {
	return s.settings.GetAll()
}

func (s *SettingsService) ListUsers() []models.User {
	return s.settings.Users.GetAll()
}

func (s *SettingsService) GetUser(id int) (models.User, bool) {
	return s.settings.Users.GetByID(id)
}

// FindUserByEmail looks a user up by email, ignoring case.
func (s *SettingsService) FindUserByEmail(email string) (models.User, bool) {
	return s.settings.Users.First(func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (s *SettingsService) CreateUser(u models.User) (models.User, error) {
	if u.DepartmentID > 0 {
		if _, ok := s.settings.Departments.GetByID(u.DepartmentID); !ok {
			return models.User{}, errors.NotFoundf("department %d", u.DepartmentID)
		}
	}
	created, err := s.settings.Users.Create(u)
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("user created", zap.Int("id", created.ID), zap.String("email", created.Email))
	return created, nil
}
