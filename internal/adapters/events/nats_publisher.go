package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const SubjectTripPlanned = "trips.planned"

// Pending publishes get this long to reach the server on Close.
const closeFlushTimeout = 5 * time.Second

type PublisherMetrics interface {
	IncPublished()
	IncPublishErr()
	ObservePublish(d time.Duration)
	SetNATSConnected(connected bool)
}

// conn is the subset of *nats.Conn used here.
type conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// NATSPublisher implements PlanPublisher on a core NATS connection.
type NATSPublisher struct {
	conn    conn
	subject string
	metrics PublisherMetrics
}

func NewNATSPublisher(url string, m PublisherMetrics) (*NATSPublisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("nats publisher: url is empty")
	}

	nc, err := nats.Connect(url,
		nats.Name("trip-planner"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.SetNATSConnected(false)
			}
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			if m != nil {
				m.SetNATSConnected(true)
			}
			log.Info().Str("url", c.ConnectedUrlRedacted()).Msg("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetNATSConnected(false)
			}
			log.Info().Msg("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats publisher: connect: %w", err)
	}
	if m != nil {
		m.SetNATSConnected(true)
	}

	return &NATSPublisher{conn: nc, subject: SubjectTripPlanned, metrics: m}, nil
}

// Close flushes buffered publishes, then closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.FlushTimeout(closeFlushTimeout); err != nil {
		log.Warn().Err(err).Msg("nats flush on close")
	}
	p.conn.Close()
}

// PublishTripPlanned publishes ev as JSON on the trips.planned subject.
func (p *NATSPublisher) PublishTripPlanned(ctx context.Context, ev ports.TripPlanned) (err error) {
	defer obs.Time(ctx, "nats.PublishTripPlanned")(&err)

	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("publish trip planned: marshal: %w", err)
	}

	start := time.Now()
	err = p.conn.Publish(p.subject, b)
	if p.metrics != nil {
		p.metrics.ObservePublish(time.Since(start))
		if err != nil {
			p.metrics.IncPublishErr()
		} else {
			p.metrics.IncPublished()
		}
	}
	if err != nil {
		return fmt.Errorf("publish trip planned subject=%s: %w", p.subject, err)
	}

	return nil
}
