package db

import (
	"marketplace-bidding-service/internal/ports/outbound"
)

// RepositoryFactory creates the PostgreSQL repositories
type RepositoryFactory struct {
	conn *Connection
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// GetProjectRepository returns the project repository
func (f *RepositoryFactory) GetProjectRepository() outbound.ProjectRepository {
	return NewProjectRepository(f.conn)
}

// GetBidRepository returns the bid repository
func (f *RepositoryFactory) GetBidRepository() outbound.BidRepository {
	return NewBidRepository(f.conn)
}

// GetTransactor returns the unit-of-work runner
func (f *RepositoryFactory) GetTransactor() outbound.Transactor {
	return f.conn
}

// GetAllRepositories returns the repositories bound to the pool
func (f *RepositoryFactory) GetAllRepositories() outbound.Repositories {
	return outbound.Repositories{
		Projects: f.GetProjectRepository(),
		Bids:     f.GetBidRepository(),
	}
}
