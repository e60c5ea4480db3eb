package service

import "fmt"

// EventPublisher receives catalog change notifications.
type EventPublisher interface {
	Publish(event any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(any) {}

// NopPublisher discards every event.
var NopPublisher EventPublisher = nopPublisher{}

type CatalogEvent struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	Entity  string `json:"entity"`
	ID      uint   `json:"id"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func newEvent(entity, verb string, id uint, name string) CatalogEvent {
	msg := fmt.Sprintf("%s '%s' %s", entity, name, verb)
	if name == "" {
		msg = fmt.Sprintf("%s %d %s", entity, id, verb)
	}
	return CatalogEvent{
		Type:    "catalog_update",
		Action:  entity + "_" + verb,
		Entity:  entity,
		ID:      id,
		Name:    name,
		Message: msg,
	}
}
