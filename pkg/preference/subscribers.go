package preference

import (
	"github.com/bps3210/simkak/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// RegisterTemplateSubscribers keeps the default template preference in sync with template changes.
func RegisterTemplateSubscribers(bus *event_bus.EventBus, store Store) {
	event_bus.SubscribeTyped(bus, event_bus.TemplateDefaultChangedType, func(e event_bus.EventT[event_bus.TemplateDefaultChanged]) error {
		log.Debugf("Remembering %s as default template", e.Data.FilePath)
		return store.Set(e.Context(), DefaultTemplatePathKey, e.Data.FilePath)
	})

	event_bus.SubscribeTyped(bus, event_bus.TemplateDeletedType, func(e event_bus.EventT[event_bus.TemplateDeleted]) error {
		current, ok, err := store.Get(e.Context(), DefaultTemplatePathKey)
		if err != nil {
			return err
		}
		if !ok || current != e.Data.FilePath {
			return nil
		}
		log.Infof("Default template %s was deleted, clearing preference", e.Data.FilePath)
		return store.Delete(e.Context(), DefaultTemplatePathKey)
	})
}
