package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/blacklist"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-memory repositories
// regardless of the DBTX passed in. Data lives as long as the process.
type MemoryRepositoryManager struct {
	users     *users.MemoryRepository
	blacklist *blacklist.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		blacklist: blacklist.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Blacklist(dbx.DBTX) blacklist.Repository { return m.blacklist }
