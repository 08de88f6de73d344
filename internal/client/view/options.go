package view

import (
	"github.com/dmitrijs2005/booky/internal/client/events"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/logging"
)

type settings struct {
	notifier  Notifier
	log       logging.Logger
	bus       *events.Bus
	dependsOn []models.Kind
}

type Option func(*settings)

func WithNotifier(n Notifier) Option {
	return func(s *settings) { s.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithBus subscribes the synchronizer to session and resource events and
// lets it announce its own successful mutations.
func WithBus(b *events.Bus) Option {
	return func(s *settings) { s.bus = b }
}

// DependsOn lists the kinds whose changes make this view stale, e.g. the
// products screen shows category names and so depends on categories.
func DependsOn(kinds ...models.Kind) Option {
	return func(s *settings) { s.dependsOn = append(s.dependsOn, kinds...) }
}
