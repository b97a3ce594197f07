package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/client/session"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

// EmployeeService fetches the employee directory and keeps a local cached
// copy so the list remains viewable when the backend is unreachable. The
// cache is session-scoped: logout clears it.
type EmployeeService struct {
	client  client.Client
	session *session.Store
	store   localstore.Repository
	log     logging.Logger
}

func NewEmployeeService(c client.Client, s *session.Store, store localstore.Repository, log logging.Logger) *EmployeeService {
	return &EmployeeService{client: c, session: s, store: store, log: log}
}

// List returns the employee directory. A fresh copy is fetched and cached
// when possible; on a transport failure the cached copy is served instead.
// Authorization failures are returned as-is, never masked by the cache.
func (e *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	token := e.session.Token()

	list, err := e.client.Employees(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) || errors.Is(err, client.ErrTimeout) {
			if cached, cerr := e.cached(ctx); cerr == nil && cached != nil {
				e.log.Info(ctx, "backend unreachable, serving cached employee list", "count", len(cached))
				return cached, nil
			}
		}
		return nil, err
	}

	if data, merr := json.Marshal(list); merr == nil {
		if serr := e.store.Set(ctx, localstore.KeyEmployees, data); serr != nil {
			e.log.Warn(ctx, "failed to cache employee list", "error", serr)
		}
	}
	return list, nil
}

func (e *EmployeeService) cached(ctx context.Context) ([]models.Employee, error) {
	data, err := e.store.Get(ctx, localstore.KeyEmployees)
	if err != nil || data == nil {
		return nil, err
	}
	var list []models.Employee
	if err := json.Unmarshal(data, &list); err != nil {
		// Malformed cache is dropped, same policy as a corrupted session.
		e.log.Warn(ctx, "discarding corrupted employee cache", "error", err)
		_ = e.store.Delete(ctx, localstore.KeyEmployees)
		return nil, nil
	}
	return list, nil
}
