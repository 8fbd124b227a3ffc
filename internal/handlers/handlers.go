package handlers

import (
	"github.com/pasarlink/pasarlink-golang/internal/config"
	"github.com/pasarlink/pasarlink-golang/internal/ledger"
	"github.com/pasarlink/pasarlink-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Cfg        config.Config
	Partitions store.PartitionStore
	Inbox      store.InboxStore
	Users      store.UserStore
	Ledger     *ledger.Ledger
	Engine     *ledger.Engine
	Commission *ledger.Commission
}

// New wires the ledger components over the given stores.
func New(cfg config.Config, partitions store.PartitionStore, inbox store.InboxStore, users store.UserStore) *Handlers {
	dispatcher := ledger.NewDispatcher(inbox, cfg.AdminUserID)
	return &Handlers{
		Cfg:        cfg,
		Partitions: partitions,
		Inbox:      inbox,
		Users:      users,
		Ledger:     ledger.NewLedger(partitions, dispatcher),
		Engine:     ledger.NewEngine(partitions, dispatcher),
		Commission: ledger.NewCommission(partitions, cfg),
	}
}
