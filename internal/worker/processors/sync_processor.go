package processors

import (
	"context"
	"fmt"

	"partnerbridge/internal/events"
	"partnerbridge/internal/logger"
	"partnerbridge/internal/notify"
	"partnerbridge/internal/sync"
)

// SyncProcessor dispatches sync events to the catalog importer and reports
// the outcome.
type SyncProcessor struct {
	importer    *sync.Importer
	notifier    notify.Notifier
	notifyEmail string
	logger      *logger.Logger
}

func NewSyncProcessor(importer *sync.Importer, notifier notify.Notifier, notifyEmail string, logger *logger.Logger) *SyncProcessor {
	return &SyncProcessor{
		importer:    importer,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		logger:      logger,
	}
}

func (p *SyncProcessor) Process(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.TypeSyncPartner:
		stats, err := p.importer.SyncPartner(ctx, event.Shop)
		if err != nil {
			return fmt.Errorf("sync failed for %s: %w", event.Shop, err)
		}
		p.report([]*sync.Stats{stats})
		return nil

	case events.TypeSyncAll:
		stats, err := p.importer.SyncAll(ctx)
		if err != nil {
			return fmt.Errorf("full sync failed: %w", err)
		}
		p.report(stats)
		return nil

	default:
		p.logger.Debug("Ignoring unknown event type: %s", event.Type)
		return nil
	}
}

func (p *SyncProcessor) report(stats []*sync.Stats) {
	if p.notifyEmail == "" || len(stats) == 0 {
		return
	}

	text := "Catalog sync completed:\n"
	for _, s := range stats {
		text += fmt.Sprintf("- %s: %d items (%d new, %d updated) over %d pages in %s\n",
			s.Shop, s.Items, s.Created, s.Updated, s.Pages, s.Duration)
	}

	if err := p.notifier.Send("Catalog sync completed", "", text, p.notifyEmail); err != nil {
		p.logger.Warn("Failed to send sync report: %v", err)
	}
}
