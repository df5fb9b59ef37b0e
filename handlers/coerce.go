package handlers

import (
	"encoding/json"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/volatiletech/null"
	"math"
	"strconv"
	"strings"
)

var (
	truthy = map[string]bool{"1": true, "on": true, "t": true, "true": true, "y": true, "yes": true}
	falsy  = map[string]bool{"0": true, "off": true, "f": true, "false": true, "n": true, "no": true}
)

// coerceFloat accepts a JSON number or a string holding a finite number
func coerceFloat(raw json.RawMessage) (float64, *models.ValidationError) {
	var number null.Float64
	if err := number.UnmarshalJSON(raw); err == nil && number.Valid {
		return number.Float64, nil
	}

	var str null.String
	if err := str.UnmarshalJSON(raw); err != nil || !str.Valid {
		return 0, &models.ValidationError{Type: models.FloatType, Msg: "Input should be a valid number"}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(str.String), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &models.ValidationError{Type: models.FloatParsing, Msg: "Input should be a valid number, unable to parse string as a number"}
	}
	return value, nil
}

// coerceBool accepts a JSON boolean, the numbers 0 and 1, or one of the usual
// yes/no words. null is rejected.
func coerceBool(raw json.RawMessage) (bool, *models.ValidationError) {
	var flag null.Bool
	if err := flag.UnmarshalJSON(raw); err == nil && flag.Valid {
		return flag.Bool, nil
	}

	var number null.Float64
	if err := number.UnmarshalJSON(raw); err == nil && number.Valid {
		switch number.Float64 {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, &models.ValidationError{Type: models.BoolParsing, Msg: "Input should be a valid boolean, unable to interpret input"}
	}

	var str null.String
	if err := str.UnmarshalJSON(raw); err == nil && str.Valid {
		word := strings.ToLower(strings.TrimSpace(str.String))
		switch {
		case truthy[word]:
			return true, nil
		case falsy[word]:
			return false, nil
		}
		return false, &models.ValidationError{Type: models.BoolParsing, Msg: "Input should be a valid boolean, unable to interpret input"}
	}

	return false, &models.ValidationError{Type: models.BoolType, Msg: "Input should be a valid boolean"}
}
