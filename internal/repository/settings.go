package repository

import (
	"sort"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

// MasterPtr is satisfied by pointers to settings rows.
type MasterPtr[T any] interface {
	*T
	Record
	GetCode() string
	GetName() string
	Master() *models.MasterRecord
}

// MasterTable is a settings table with a unique code column.
type MasterTable[T any, PT MasterPtr[T]] struct {
	*Base[T, PT]
	name string
}

func newMasterTable[T any, PT MasterPtr[T]](clk clock.Clock, name string, seed func() []T) *MasterTable[T, PT] {
	return &MasterTable[T, PT]{
		name: name,
		Base: NewBase[T, PT](clk, Hooks[T]{
			Seed: seed,
			Validate: func(rec T, isUpdate bool) error {
				p := PT(&rec)
				if isUpdate {
					return nil
				}
				return firstErr(
					required(name+" code", p.GetCode()),
					required(name+" name", p.GetName()),
				)
			},
			Conflict: func(rec, other T) error {
				if sameText(PT(&rec).GetCode(), PT(&other).GetCode()) {
					return errors.AlreadyExistsf("%s code %q", name, PT(&rec).GetCode())
				}
				return nil
			},
		}),
	}
}

// Name is the table's display name.
func (m *MasterTable[T, PT]) Name() string {
	return m.name
}

// GetByCode returns the record with the given code, ignoring case.
func (m *MasterTable[T, PT]) GetByCode(code string) (T, bool) {
	return m.First(func(rec T) bool {
		return sameText(PT(&rec).GetCode(), code)
	})
}

// CodeExists reports whether another record already uses code.
func (m *MasterTable[T, PT]) CodeExists(code string, excludeID int) bool {
	return m.Exists(func(rec T) bool {
		p := PT(&rec)
		return p.GetID() != excludeID && sameText(p.GetCode(), code)
	})
}

// Lookup finds a record whose code or display name matches s, ignoring
// case. Codes win over names.
func (m *MasterTable[T, PT]) Lookup(s string) (T, bool) {
	if rec, ok := m.GetByCode(s); ok {
		return rec, true
	}
	return m.First(func(rec T) bool {
		return sameText(PT(&rec).GetName(), s)
	})
}

// NameOf returns the display name for id, or "" when it does not exist.
func (m *MasterTable[T, PT]) NameOf(id int) string {
	rec, ok := m.GetByID(id)
	if !ok {
		return ""
	}
	return PT(&rec).GetName()
}

// Ordered returns every record by sort order, then id.
func (m *MasterTable[T, PT]) Ordered() []T {
	return sortFunc(m.GetAll(), ptrField[T, PT], "sort_order,id", map[string]string{
		"sort_order": "sort_order",
		"id":         "id",
	})
}

// SettingsRepository owns every reference table: asset types, statuses,
// locations, departments, depreciation methods and users.
type SettingsRepository struct {
	AssetTypes          *MasterTable[models.AssetType, *models.AssetType]
	Statuses            *MasterTable[models.StatusMaster, *models.StatusMaster]
	Locations           *MasterTable[models.Location, *models.Location]
	Departments         *MasterTable[models.Department, *models.Department]
	DepreciationMethods *MasterTable[models.DepreciationMethod, *models.DepreciationMethod]
	Users               *Base[models.User, *models.User]
}

func NewSettingsRepository(clk clock.Clock, data sampledata.SettingsProvider) *SettingsRepository {
	return &SettingsRepository{
		AssetTypes:          newMasterTable[models.AssetType](clk, "asset type", data.AssetTypes),
		Statuses:            newMasterTable[models.StatusMaster](clk, "status", data.Statuses),
		Locations:           newMasterTable[models.Location](clk, "location", data.Locations),
		Departments:         newMasterTable[models.Department](clk, "department", data.Departments),
		DepreciationMethods: newMasterTable[models.DepreciationMethod](clk, "depreciation method", data.DepreciationMethods),
		Users: NewBase[models.User](clk, Hooks[models.User]{
			Seed:     data.Users,
			Validate: validateUser,
			Conflict: func(rec, other models.User) error {
				if rec.EmployeeNumber != "" && sameText(rec.EmployeeNumber, other.EmployeeNumber) {
					return errors.AlreadyExistsf("employee number %q", rec.EmployeeNumber)
				}
				return nil
			},
		}),
	}
}

func validateUser(u models.User, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(required("user name", u.Name), required("user email", u.Email)); err != nil {
			return err
		}
	}
	return validEmail("user email", u.Email)
}

// Reset reloads every table from the sample data.
func (r *SettingsRepository) Reset() {
	r.AssetTypes.Reset()
	r.Statuses.Reset()
	r.Locations.Reset()
	r.Departments.Reset()
	r.DepreciationMethods.Reset()
	r.Users.Reset()
}

// StatusIDFor maps an asset status to its settings row id. 0 means the
// status table has no such code.
func (r *SettingsRepository) StatusIDFor(s models.AssetStatus) int {
	rec, ok := r.Statuses.GetByCode(string(s))
	if !ok {
		return 0
	}
	return rec.ID
}

// UserName returns the user's name or "" when the id is unknown.
func (r *SettingsRepository) UserName(id int) string {
	u, ok := r.Users.GetByID(id)
	if !ok {
		return ""
	}
	return u.Name
}

// GetAll returns every table, ordered for display.
func (r *SettingsRepository) GetAll() models.AllSettings {
	users := r.Users.GetAll()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return models.AllSettings{
		AssetTypes:          r.AssetTypes.Ordered(),
		Statuses:            r.Statuses.Ordered(),
		Locations:           r.Locations.Ordered(),
		Departments:         r.Departments.Ordered(),
		DepreciationMethods: r.DepreciationMethods.Ordered(),
		Users:               users,
	}
}
