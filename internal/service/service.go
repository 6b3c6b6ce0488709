// Package service holds the catalog's application logic: the user directory,
// the authenticator, the movie catalog and the favorites manager.
package service

import (
	"github.com/sirupsen/logrus"

	"movie-library/internal/repository"
)

// Store is the persistence surface the services depend on. Plain reads go
// through the Repositories; read-then-write sequences run inside Execute.
type Store interface {
	repository.Repositories
	repository.TransactionManager
}

func fieldLogger(logger logrus.FieldLogger, component string) logrus.FieldLogger {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return logger.WithField("component", component)
}
