package class

import "gorm.io/gorm"

type ClassContainer struct {
	Repo    ClassRepository
	Service ClassService
	Handler *Handler
}

func NewClassContainer(db *gorm.DB) *ClassContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ClassContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
