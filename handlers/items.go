package handlers

import (
	"encoding/json"
	"fmt"
	"github.com/MarselErlan/supabase-02-api/dbHelpers"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/MarselErlan/supabase-02-api/utils"
	"github.com/pkg/errors"
	"github.com/volatiletech/null"
	"io"
	"net/http"
)

type ItemHandler struct {
	Store dbHelpers.ItemStore
}

func NewItemHandler(store dbHelpers.ItemStore) *ItemHandler {
	return &ItemHandler{Store: store}
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	newItem, validationErrors := decodeNewItem(r.Body)
	if len(validationErrors) > 0 {
		utils.RespondError(w, http.StatusUnprocessableEntity, errors.New("invalid item body"), validationErrors)
		return
	}

	item, err := h.Store.InsertItem(r.Context(), newItem)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, fmt.Sprintf("Failed to create item: %s", err))
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.GetItems(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, fmt.Sprintf("Failed to retrieve items: %s", err))
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

// decodeNewItem reads an item body field by field so that every missing or
// mistyped field is reported. Any id in the body is ignored.
func decodeNewItem(body io.Reader) (models.NewItem, []models.ValidationError) {
	fields := make(map[string]json.RawMessage)
	if err := utils.ParseBody(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return models.NewItem{}, []models.ValidationError{bodyError(models.MissingField, "Field required")}
		case errors.As(err, &typeErr):
			return models.NewItem{}, []models.ValidationError{bodyError(models.DictType, "Input should be a valid dictionary")}
		default:
			return models.NewItem{}, []models.ValidationError{bodyError(models.JSONInvalid, "JSON decode error")}
		}
	}
	if fields == nil {
		return models.NewItem{}, []models.ValidationError{bodyError(models.MissingField, "Field required")}
	}

	var (
		name    null.String
		price   float64
		isOffer bool
		errs    []models.ValidationError
	)

	if raw, ok := fields["name"]; !ok {
		errs = append(errs, fieldError("name", models.MissingField, "Field required"))
	} else if err := name.UnmarshalJSON(raw); err != nil || !name.Valid {
		errs = append(errs, fieldError("name", models.StringType, "Input should be a valid string"))
	}

	if raw, ok := fields["price"]; !ok {
		errs = append(errs, fieldError("price", models.MissingField, "Field required"))
	} else if value, fieldErr := coerceFloat(raw); fieldErr != nil {
		errs = append(errs, fieldError("price", fieldErr.Type, fieldErr.Msg))
	} else {
		price = value
	}

	if raw, ok := fields["is_offer"]; ok {
		if value, fieldErr := coerceBool(raw); fieldErr != nil {
			errs = append(errs, fieldError("is_offer", fieldErr.Type, fieldErr.Msg))
		} else {
			isOffer = value
		}
	}

	if len(errs) > 0 {
		return models.NewItem{}, errs
	}
	return models.NewItem{
		Name:    name.String,
		Price:   price,
		IsOffer: isOffer,
	}, nil
}

func bodyError(errType, msg string) models.ValidationError {
	return models.ValidationError{Loc: []string{"body"}, Msg: msg, Type: errType}
}

func fieldError(field, errType, msg string) models.ValidationError {
	return models.ValidationError{Loc: []string{"body", field}, Msg: msg, Type: errType}
}
