package app

import (
	"log"

	"github.com/ayusman/airkeys/internal/selection"
	"github.com/ayusman/airkeys/internal/store"
)

// startJournal opens a journal session when a store is configured.
// Journal failures are logged and never stop typing.
func (a *App) startJournal() {
	if a.config.Store == nil {
		return
	}

	sess, err := a.config.Store.Sessions().Start(a.renderer.Theme().Name, a.now())
	if err != nil {
		log.Printf("Failed to start journal session: %v", err)
		return
	}
	a.journal = sess
}

func (a *App) recordCommit(ev selection.Event) {
	if a.journal == nil {
		return
	}

	err := a.config.Store.Commits().Record(&store.Commit{
		SessionID:   a.journal.ID,
		Key:         ev.Key,
		CommittedAt: ev.At,
		Held:        ev.Held,
	})
	if err != nil {
		log.Printf("Failed to journal commit %q: %v", ev.Key, err)
	}
}

func (a *App) endJournal() {
	if a.journal == nil {
		return
	}

	if err := a.config.Store.Sessions().End(a.journal.ID, a.now(), a.session.Len()); err != nil {
		log.Printf("Failed to end journal session: %v", err)
	}
}

// JournalID returns the ID of the journal session, or "" when not journaling.
func (a *App) JournalID() string {
	if a.journal == nil {
		return ""
	}
	return a.journal.ID
}

// Summary returns per-key commit counts for this run, most used first.
func (a *App) Summary() ([]store.KeyCount, error) {
	if a.journal == nil {
		return nil, nil
	}
	return a.config.Store.Commits().CountByKey(a.journal.ID)
}
