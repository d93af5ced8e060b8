package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
)

type PlanTripRequest struct {
	CurrentLocation domain.Location `json:"current_location"`
	PickupLocation  domain.Location `json:"pickup_location"`
	DropoffLocation domain.Location `json:"dropoff_location"`
	CycleUsed       *CycleHours     `json:"cycle_used"`
}

// CycleHours accepts a JSON number or a numeric string such as "12.5".
type CycleHours float64

func (c *CycleHours) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("cycle_used must be a number")
		}
		*c = CycleHours(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return errors.New("cycle_used must be a number")
	}
	*c = CycleHours(f)
	return nil
}

type PlanTripResponse struct {
	TripID string `json:"trip_id,omitempty"`
	*hos.Result
}

type ErrorResponse struct {
	Error       string          `json:"error"`
	ORSResponse json.RawMessage `json:"ors_response,omitempty"`
}
