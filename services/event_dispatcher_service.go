package services

import (
	"encoding/json"
	"log"
	"time"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/database"
	"trackit-app/trackit/models"
	"trackit-app/trackit/utils/dates"
)

type EventDispatcherServiceInterface interface {
	Start()
	Stop()
	DispatchPendingEvents() error
}

// EventDispatcherService drains the event outbox: undispatched rows are
// published to their entity subject and marked dispatched. Runs only when the
// broker is available; the write path never depends on it.
type EventDispatcherService struct {
	db      *database.Database
	ticker  *time.Ticker
	done    chan struct{}
	started bool
}

func NewEventDispatcherService(db *database.Database) *EventDispatcherService {
	return &EventDispatcherService{
		db:     db,
		ticker: time.NewTicker(1 * time.Second),
		done:   make(chan struct{}),
	}
}

func (s *EventDispatcherService) Start() {
	if s.started {
		return
	}
	s.started = true
	go s.run()
}

// Stop halts the dispatch loop. Closing done rather than flipping a flag
// means the goroutine is released even with the ticker stopped.
func (s *EventDispatcherService) Stop() {
	if !s.started {
		return
	}
	s.started = false
	s.ticker.Stop()
	close(s.done)
}

func (s *EventDispatcherService) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			if err := s.DispatchPendingEvents(); err != nil {
				log.Printf("Error dispatching events: %v", err)
			}
		}
	}
}

func (s *EventDispatcherService) DispatchPendingEvents() error {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).Order("timestamp ASC").Find(&events).Error; err != nil {
		return err
	}

	for _, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			log.Printf("Error dispatching event %s: %v", event.ID, err)
			continue
		}

		now := dates.Timestamp()
		err := s.db.DB.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Updates(map[string]interface{}{"dispatched": true, "dispatched_at": &now}).Error
		if err != nil {
			log.Printf("Error marking event %s dispatched: %v", event.ID, err)
		}
	}

	return nil
}

func (s *EventDispatcherService) dispatchEvent(event models.Event) error {
	subject := broker.SubjectForEntity(event.Entity)
	if subject == "" {
		// Unknown entity rows are skipped, not retried forever.
		log.Printf("No subject for entity %q, skipping event %s", event.Entity, event.ID)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event_id":  event.ID.String(),
		"type":      event.Event,
		"entity":    event.Entity,
		"actor_id":  event.ActorID,
		"timestamp": event.Timestamp,
		"data":      json.RawMessage(event.Data),
	})
	if err != nil {
		return err
	}

	return broker.PublishMessage(subject, payload)
}

var EventDispatcherServiceInstance EventDispatcherServiceInterface
