package repository

import (
	"matchday/application"
	"matchday/database"
	"matchday/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work for tests with the provided
// transactional publisher
func CreateTestUnitOfWork(db *database.DB, publisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	factory := NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return publisher
	})
	return factory.Create()
}
