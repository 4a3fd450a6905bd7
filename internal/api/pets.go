package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type petPayload struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Weight    string `json:"weight"`
	Notes     string `json:"notes"`
	Photo     string `json:"photo"`
}

func registerPetRoutes() {
	webserver.ApiGET("/pets", listPets)
	webserver.ApiGET("/pets/:id", getPet)
	webserver.ApiPOST("/pets", createPet)
	webserver.ApiPUT("/pets/:id", updatePet)
	webserver.ApiDELETE("/pets/:id", deletePet)
}

func listPets(c echo.Context) error {
	db := GetDB(c).Model(&domain.Pet{})
	if isAdmin(c) {
		if uid := c.QueryParam("user_id"); uid != "" {
			db = db.Where("user_id = ?", uid)
		}
	} else {
		db = db.Where("user_id = ?", currentUserID(c))
	}
	var rows []domain.Pet
	if err := db.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query pets", err.Error())
	}
	return ok(c, rows)
}

// loadOwnedPet fetches the pet and hides rows the caller does not own.
func loadOwnedPet(c echo.Context, id int64) (*domain.Pet, error) {
	var pet domain.Pet
	if err := GetDB(c).First(&pet, id).Error; err != nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin(c) && pet.UserId != currentUserID(c) {
		return nil, domain.ErrNotFound
	}
	return &pet, nil
}

func getPet(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID", nil)
	}
	pet, err := loadOwnedPet(c, id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, pet)
}

func (p *petPayload) apply(pet *domain.Pet) []string {
	var msgs []string
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if !domain.ValidSpecies(p.Species) {
		msgs = append(msgs, "species must be one of: "+strings.Join(domain.PetSpecies, ", "))
	}
	if p.Gender != "" && !common.InSlice(p.Gender, domain.PetGenders) {
		msgs = append(msgs, "gender must be one of: "+strings.Join(domain.PetGenders, ", "))
	}

	pet.Name = p.Name
	pet.Species = p.Species
	pet.Breed = strings.TrimSpace(p.Breed)
	pet.Gender = p.Gender
	pet.Notes = p.Notes
	pet.Photo = strings.TrimSpace(p.Photo)

	if !common.IsEmptyOrNA(p.BirthDate) {
		birth, err := dateparse.ParseLocal(p.BirthDate)
		if err != nil {
			msgs = append(msgs, "birth_date is not a recognizable date")
		} else {
			pet.BirthDate = &birth
		}
	} else {
		pet.BirthDate = nil
	}

	pet.Weight = decimal.NullDecimal{}
	if p.Weight != "" {
		w, err := decimal.NewFromString(p.Weight)
		if err != nil || w.IsNegative() {
			msgs = append(msgs, "weight must be a positive decimal number")
		} else {
			pet.Weight = decimal.NullDecimal{Decimal: w, Valid: true}
		}
	}
	return msgs
}

func createPet(c echo.Context) error {
	var payload petPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse pet", err.Error())
	}

	pet := domain.Pet{
		ID:     common.UUIDint64(),
		UserId: currentUserID(c),
	}
	if msgs := payload.apply(&pet); len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}
	if err := GetDB(c).Create(&pet).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create pet", err.Error())
	}
	return created(c, pet)
}

func updatePet(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID", nil)
	}
	pet, err := loadOwnedPet(c, id)
	if err != nil {
		return failErr(c, err)
	}

	var payload petPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse pet", err.Error())
	}
	if msgs := payload.apply(pet); len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}
	if err := GetDB(c).Save(pet).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update pet", err.Error())
	}
	return ok(c, pet)
}

func deletePet(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID", nil)
	}
	pet, err := loadOwnedPet(c, id)
	if err != nil {
		return failErr(c, err)
	}
	if err := GetDB(c).Delete(&domain.Pet{}, pet.ID).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete pet", err.Error())
	}
	addOprLog(c, "pet.delete", strconv.FormatInt(pet.ID, 10))
	return ok(c, map[string]interface{}{"id": pet.ID})
}
