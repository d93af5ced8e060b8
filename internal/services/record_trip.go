package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecordTrip stores a successful plan and announces it. A storage failure
// is returned; a publish failure is only logged. publisher may be nil.
func RecordTrip(
	ctx context.Context,
	req PlanTripRequest,
	res *hos.Result,
	repo ports.TripRepository,
	publisher ports.PlanPublisher,
) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "services.RecordTrip")(&err)

	if repo == nil {
		return nil, errors.New("record trip: repository is nil")
	}
	if res == nil {
		return nil, errors.New("record trip: plan is nil")
	}

	plan, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("record trip: encode plan: %w", err)
	}

	trip := &domain.Trip{
		ID:                  uuid.NewString(),
		CurrentLocation:     req.Current,
		PickupLocation:      req.Pickup,
		DropoffLocation:     req.Dropoff,
		CycleUsedHours:      req.CycleUsedHours,
		Summary:             res.Summary,
		RemainingCycleHours: res.RemainingCycleHours,
		Legs:                res.Legs,
		Plan:                plan,
		CreatedAt:           time.Now().UTC(),
	}

	if err := repo.Save(ctx, trip); err != nil {
		return nil, fmt.Errorf("record trip: %w", err)
	}

	if publisher != nil {
		ev := ports.TripPlanned{
			TripID:              trip.ID,
			PlannedAt:           trip.CreatedAt,
			Pickup:              trip.PickupLocation,
			Dropoff:             trip.DropoffLocation,
			RemainingCycleHours: trip.RemainingCycleHours,
			Summary:             trip.Summary,
		}
		if err := publisher.PublishTripPlanned(ctx, ev); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("trip_id", trip.ID).Msg("trip planned event not published")
		}
	}

	return trip, nil
}
