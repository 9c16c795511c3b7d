package repository

import (
	"sort"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

var (
	contractTypes    = enumSet(models.ContractTypes)
	contractStatuses = enumSet(models.ContractStatuses)
)

type ContractRepository struct {
	*Base[models.Contract, *models.Contract]
}

func NewContractRepository(clk clock.Clock, data sampledata.ContractProvider) *ContractRepository {
	return &ContractRepository{
		Base: NewBase[models.Contract](clk, Hooks[models.Contract]{
			Seed:     data.Contracts,
			Validate: validateContract,
			Conflict: func(rec, other models.Contract) error {
				if sameText(rec.ContractNumber, other.ContractNumber) {
					return errors.AlreadyExistsf("contract number %q", rec.ContractNumber)
				}
				return nil
			},
		}),
	}
}

func validateContract(c models.Contract, isUpdate bool) error {
	if !isUpdate {
		if err := firstErr(
			requiredID("partner", c.PartnerID),
			required("contract number", c.ContractNumber),
			required("contract title", c.Title),
			required("contract type", string(c.Type)),
		); err != nil {
			return err
		}
		if c.StartDate.IsZero() || c.EndDate.IsZero() {
			return notValid("contract start and end dates are required")
		}
	}
	if err := firstErr(
		oneOf("contract type", string(c.Type), contractTypes),
		oneOf("contract status", string(c.Status), contractStatuses),
		nonNegative("contract amount", c.Amount),
	); err != nil {
		return err
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return notValid("contract end date %s is before start date %s",
			c.EndDate.Format(models.DateLayout), c.StartDate.Format(models.DateLayout))
	}
	return nil
}

func (r *ContractRepository) GetByPartner(partnerID int) []models.Contract {
	return r.Find(func(c models.Contract) bool { return c.PartnerID == partnerID })
}

func (r *ContractRepository) GetByStatus(status models.ContractStatus) []models.Contract {
	return r.Find(func(c models.Contract) bool { return c.Status == status })
}

// GetExpiring returns live contracts ending within days of now, soonest
// first.
func (r *ContractRepository) GetExpiring(now time.Time, days int) []models.Contract {
	out := r.Find(func(c models.Contract) bool {
		if c.Status != models.ContractStatusActive && c.Status != models.ContractStatusExpiring {
			return false
		}
		left := c.DaysUntilEnd(now)
		return left >= 0 && left <= days
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out
}

// HasActiveContracts reports whether the partner has a contract in the
// active state.
func (r *ContractRepository) HasActiveContracts(partnerID int) bool {
	return r.Exists(func(c models.Contract) bool {
		return c.PartnerID == partnerID && c.Status == models.ContractStatusActive
	})
}

func (r *ContractRepository) ContractNumberExists(number string, excludeID int) bool {
	return r.Exists(func(c models.Contract) bool {
		return c.ID != excludeID && sameText(c.ContractNumber, number)
	})
}

func (r *ContractRepository) GetStatusDistribution() map[string]int {
	return Distribution(r.GetAll(), func(c models.Contract) string { return string(c.Status) },
		enumKeys(models.ContractStatuses)...)
}

func (r *ContractRepository) GetTypeDistribution() map[string]int {
	return Distribution(r.GetAll(), func(c models.Contract) string { return string(c.Type) },
		enumKeys(models.ContractTypes)...)
}
